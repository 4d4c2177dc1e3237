// Package rpc binds the named request/response operations used by the desktop shell to
// the use cases that serve them.
package rpc

import (
	"context"

	"github.com/fastygo/backoffice/api/transport"
	"github.com/fastygo/backoffice/domain"
	"github.com/fastygo/backoffice/repository"
	"github.com/fastygo/backoffice/usecase"
	accountingUC "github.com/fastygo/backoffice/usecase/accounting"
	backupUC "github.com/fastygo/backoffice/usecase/backup"
	businessUC "github.com/fastygo/backoffice/usecase/business"
	clientUC "github.com/fastygo/backoffice/usecase/client"
	contentUC "github.com/fastygo/backoffice/usecase/content"
	documentUC "github.com/fastygo/backoffice/usecase/document"
	invoiceUC "github.com/fastygo/backoffice/usecase/invoice"
	leadUC "github.com/fastygo/backoffice/usecase/lead"
	productUC "github.com/fastygo/backoffice/usecase/product"
	reportUC "github.com/fastygo/backoffice/usecase/report"
	settingsUC "github.com/fastygo/backoffice/usecase/settings"
	taskUC "github.com/fastygo/backoffice/usecase/task"
)

// StartupOperation is fetched once by the shell after its UI is ready.
const StartupOperation = "get-business"

type Services struct {
	Business   *businessUC.UseCase
	Clients    *clientUC.UseCase
	Leads      *leadUC.UseCase
	Accounting *accountingUC.UseCase
	Documents  *documentUC.UseCase
	Invoices   *invoiceUC.UseCase
	Products   *productUC.UseCase
	Settings   *settingsUC.UseCase
	Tasks      *taskUC.UseCase
	Content    *contentUC.UseCase
	Reports    *reportUC.UseCase
	Backups    *backupUC.UseCase
}

// Register adds the whole operation catalog to d.
func Register(d *usecase.Dispatcher, s Services) {
	query := func(name, reply string, h usecase.Handler) {
		d.Register(usecase.Operation{Name: name, Reply: reply, Kind: usecase.KindQuery}, h)
	}
	command := func(name, reply string, h usecase.Handler) {
		d.Register(usecase.Operation{Name: name, Reply: reply, Kind: usecase.KindCommand}, h)
	}

	query(StartupOperation, "business-data", usecase.Handle(func(ctx context.Context, id int64) (*domain.Business, error) {
		if id == 0 {
			return s.Business.Startup(ctx)
		}
		return s.Business.GetBusiness(ctx, id)
	}))

	// clients
	command("save-client", "client-saved", usecase.Handle(s.Clients.CreateClient))
	query("get-clients", "clients-data", byID(s.Clients.ListClients))
	query("get-client-by-id", "client-data", byID(s.Clients.GetClient))
	query("get-client-by-id-for-docs", "client-data-for-docs", byID(s.Clients.GetClient))
	command("update-client", "client-updated", usecase.Handle(s.Clients.UpdateClient))
	command("delete-client", "client-deleted", deleteByID(s.Clients.DeleteClient))
	query("get-client-activities", "client-activities-data", byID(s.Clients.Activities))
	query("get-client-documents", "client-documents-data", byID(s.Clients.ListDocuments))
	command("save-client-document", "client-document-saved", usecase.Handle(s.Clients.CreateDocument))
	command("delete-client-document", "client-document-deleted", deleteByID(s.Clients.DeleteDocument))

	// leads
	command("save-lead", "lead-saved", usecase.Handle(s.Leads.CreateLead))
	query("get-leads", "leads-data", byID(s.Leads.ListLeads))
	query("get-lead-by-id", "lead-data", byID(s.Leads.GetLead))
	command("update-lead", "lead-updated", usecase.Handle(s.Leads.UpdateLead))
	command("delete-lead", "lead-deleted", deleteByID(s.Leads.DeleteLead))

	// bookkeeping
	query("get-accounts", "accounts-data", byID(s.Accounting.ListAccounts))
	command("save-transaction", "transaction-saved", usecase.Handle(s.Accounting.CreateTransaction))
	query("get-transactions", "transactions-data", usecase.Handle(func(ctx context.Context, req transport.PeriodRequest) ([]domain.Transaction, error) {
		if req.BusinessID == 0 {
			return nil, domain.ErrMissingID
		}
		return s.Accounting.ListTransactions(ctx, req.BusinessID, req.Period())
	}))
	command("delete-transaction", "transaction-deleted", deleteByID(s.Accounting.DeleteTransaction))

	// documents
	query("get-documents", "documents-data", byID(s.Documents.ListDocuments))
	command("save-document", "document-saved", usecase.Handle(s.Documents.CreateDocument))
	command("delete-document", "document-deleted", deleteByID(s.Documents.DeleteDocument))

	// invoices
	query("get-invoices", "invoices-data", byID(s.Invoices.ListInvoices))
	d.Register(usecase.Operation{
		Name:       "save-invoice",
		Reply:      "invoice-saved",
		ErrorReply: "invoice-save-error",
		Kind:       usecase.KindCommand,
	}, usecase.Handle(s.Invoices.SaveInvoice))
	query("get-invoice-details", "invoice-details-data", byID(s.Invoices.Details))
	command("delete-invoice", "invoice-deleted", deleteByID(s.Invoices.DeleteInvoice))
	command("mark-invoice-paid", "invoice-paid-success", byID(s.Invoices.MarkPaid))

	// products
	query("get-products", "products-data", byID(s.Products.ListProducts))
	command("save-product", "product-saved", usecase.Handle(s.Products.SaveProduct))
	command("delete-product", "product-deleted", deleteByID(s.Products.DeleteProduct))

	// settings
	query("get-settings", "settings-data", usecase.Handle(func(ctx context.Context, _ struct{}) (domain.Settings, error) {
		return s.Settings.GetSettings(ctx)
	}))
	command("save-settings", "settings-saved", usecase.Handle(func(ctx context.Context, values domain.Settings) (domain.Settings, error) {
		if err := s.Settings.SaveSettings(ctx, values); err != nil {
			return nil, err
		}
		return s.Settings.GetSettings(ctx)
	}))

	// reports
	query("get-dashboard-stats", "dashboard-stats", byID(s.Reports.Dashboard))
	query("get-financial-reports", "financial-reports-data", usecase.Handle(func(ctx context.Context, req transport.PeriodRequest) (*domain.FinancialReport, error) {
		if req.BusinessID == 0 {
			return nil, domain.ErrMissingID
		}
		return s.Reports.FinancialReport(ctx, req.BusinessID, req.Period())
	}))
	query("get-tax-report", "tax-report-data", byID(s.Reports.TaxReport))
	query("get-compliance-alerts", "compliance-alerts-data", byID(s.Reports.ComplianceAlerts))
	command("export-report", "report-exported", usecase.Handle(func(ctx context.Context, req transport.ExportRequest) (*reportUC.ExportResult, error) {
		if req.BusinessID == 0 {
			return nil, domain.ErrMissingID
		}
		return s.Reports.Export(ctx, req.BusinessID, req.Period(), req.Path)
	}))

	// backups
	command("backup-data", "backup-complete", usecase.Handle(func(ctx context.Context, req transport.PathRequest) (*domain.BackupRecord, error) {
		return s.Backups.Backup(ctx, req.Path)
	}))
	command("restore-data", "restore-complete", usecase.Handle(func(ctx context.Context, req transport.PathRequest) (*domain.BackupRecord, error) {
		return s.Backups.Restore(ctx, req.Path)
	}))
	query("get-backups", "backups-data", usecase.Handle(func(ctx context.Context, req transport.HistoryRequest) ([]domain.BackupRecord, error) {
		return s.Backups.History(ctx, req.Limit)
	}))

	// tasks
	query("get-tasks", "tasks-data", usecase.Handle(func(ctx context.Context, q transport.TaskQuery) ([]domain.Task, error) {
		return s.Tasks.ListTasks(ctx, repository.TaskFilter{BusinessID: q.BusinessID, ClientID: q.ClientID})
	}))
	command("save-task", "task-saved", usecase.Handle(s.Tasks.CreateTask))
	command("update-task", "task-updated", usecase.Handle(s.Tasks.UpdateTask))
	command("delete-task", "task-deleted", deleteByID(s.Tasks.DeleteTask))

	// content
	query("get-content-items", "content-items-data", byID(s.Content.ListItems))
	command("save-content-item", "content-item-saved", usecase.Handle(s.Content.CreateItem))
	command("update-content-item", "content-item-updated", usecase.Handle(s.Content.UpdateItem))
	command("delete-content-item", "content-item-deleted", deleteByID(s.Content.DeleteItem))
	query("get-content-activities", "content-activities-data", byID(s.Content.Activities))
	query("get-captions", "captions-data", byID(s.Content.ListCaptions))
	command("save-caption", "caption-saved", usecase.Handle(s.Content.SaveCaption))
	command("delete-caption", "caption-deleted", deleteByID(s.Content.DeleteCaption))
	query("get-hashtag-sets", "hashtag-sets-data", byID(s.Content.ListHashtagSets))
	command("save-hashtag-set", "hashtag-set-saved", usecase.Handle(s.Content.SaveHashtagSet))
	command("delete-hashtag-set", "hashtag-set-deleted", deleteByID(s.Content.DeleteHashtagSet))
}

// byID serves operations whose payload is a bare numeric id.
func byID[Res any](fn func(ctx context.Context, id int64) (Res, error)) usecase.Handler {
	return usecase.Handle(func(ctx context.Context, id int64) (Res, error) {
		if id == 0 {
			var zero Res
			return zero, domain.ErrMissingID
		}
		return fn(ctx, id)
	})
}

func deleteByID(fn func(ctx context.Context, id int64) error) usecase.Handler {
	return byID(func(ctx context.Context, id int64) (transport.Deleted, error) {
		if err := fn(ctx, id); err != nil {
			return transport.Deleted{}, err
		}
		return transport.Deleted{ID: id}, nil
	})
}
