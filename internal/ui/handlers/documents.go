// documents.go — список документов с фильтрами, сортировкой и пагинацией,
// удаление документа (только super_admin).
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/bigkaa/mygov-admin/internal/domain/model"
	"github.com/bigkaa/mygov-admin/internal/domain/rbac"
	"github.com/bigkaa/mygov-admin/internal/gateway"
	"github.com/bigkaa/mygov-admin/internal/listquery"
	uimiddleware "github.com/bigkaa/mygov-admin/internal/ui/middleware"
	"github.com/bigkaa/mygov-admin/internal/ui/pages"
)

// Сообщения раздела документов.
const (
	msgDocumentsLoad    = "documents.msg.load_error"
	msgDocumentDelete   = "documents.msg.delete_error"
	msgDocumentDeleted  = "documents.msg.deleted"
	msgDocumentConfirm  = "documents.msg.confirm_delete"
	msgDocumentNotFound = "documents.msg.not_found"
)

// DocumentsBackend — операции backend со списком документов.
type DocumentsBackend interface {
	ListDocuments(ctx context.Context) ([]model.Document, error)
	DeleteDocument(ctx context.Context, id string) error
}

// ListConfig — параметры отображения списков.
type ListConfig struct {
	DefaultPageSize int
	PageSizes       []int
	// Location — часовой пояс границ дня в фильтрах и отображения времени
	Location *time.Location
}

func (c ListConfig) location() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

// DocumentsHandler — обработчики списка документов.
type DocumentsHandler struct {
	backend DocumentsBackend
	// origin — адрес backend для ссылок скачивания
	origin string
	cfg    ListConfig
	logger *slog.Logger
}

// NewDocumentsHandler создаёт новый DocumentsHandler.
func NewDocumentsHandler(backend DocumentsBackend, origin string, cfg ListConfig, logger *slog.Logger) *DocumentsHandler {
	return &DocumentsHandler{
		backend: backend,
		origin:  origin,
		cfg:     cfg,
		logger:  logger.With(slog.String("component", "ui.documents")),
	}
}

// HandleList обрабатывает GET /documents.
func (h *DocumentsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	role, actor := currentActor(r)
	elevated := rbac.IsElevated(role)
	loc := h.cfg.location()

	st := listquery.ParseState(r.URL.Query(), listquery.DocumentSchema, h.cfg.DefaultPageSize, elevated)

	var loadErr string
	docs, err := h.backend.ListDocuments(ctx)
	if err != nil {
		if redirectIfUnauthorized(w, r, err) {
			return
		}
		h.logger.Error("Ошибка получения списка документов", slog.String("error", err.Error()))
		loadErr = gateway.UserMessage(err, tr(r, msgDocumentsLoad))
	}

	res := listquery.Project(docs, st, listquery.DocumentSchema, listquery.Options{
		Actor:    &actor,
		Location: loc,
	})
	st = st.WithPage(res.Page)

	lv := listView{path: rbac.PathDocuments, state: st, elevated: elevated, sizes: h.cfg.PageSizes}
	returnQuery := st.Query()

	rows := make([]pages.DocumentRow, 0, len(res.Visible))
	for _, d := range res.Visible {
		id := d.ID.String()
		row := pages.DocumentRow{
			DocNumber:      d.DocNumber,
			MyGovDocNumber: d.MyGovDocNumber,
			PatientName:    d.PatientName,
			Diagnosis:      d.Diagnosis,
			Organization:   d.Organization,
			CreatedAt:      formatTimestamp(d.CreatedAt, loc),
			PDFURL:         gateway.DocumentDownloadURL(h.origin, id, gateway.FormatPDF),
			DOCXURL:        gateway.DocumentDownloadURL(h.origin, id, gateway.FormatDOCX),
		}
		if elevated {
			row.Creator = creatorLabel(d)
		}
		if rbac.CanDelete(role) && id != "" {
			row.DeleteURL = withQuery("/documents/"+url.PathEscape(id)+"/delete", url.Values{"return": {returnQuery}}.Encode())
		}
		rows = append(rows, row)
	}

	sortLinks := map[string]pages.SortLink{
		listquery.FieldCreatedAt: lv.sortLink(listquery.FieldCreatedAt),
	}
	if elevated {
		sortLinks[listquery.FieldPatientName] = lv.sortLink(listquery.FieldPatientName)
	}

	data := pages.DocumentListData{
		Layout: layoutData(r, "nav.documents", rbac.PathDocuments),
		Rows:   rows,
		Filters: pages.DocumentFilters{
			Search:       st.Search,
			DateFrom:     st.Filters.DateFrom,
			DateTo:       st.Filters.DateTo,
			Organization: st.Filters.Organization,
		},
		Hidden:      lv.hidden(),
		Sort:        sortLinks,
		Nav:         lv.nav(len(res.Filtered), res.Page, res.TotalPages),
		ResetURL:    lv.resetURL(),
		LoadError:   loadErr,
		ShowCreator: elevated,
	}
	render(w, r, h.logger, pages.DocumentList(data))
}

// HandleDeleteConfirm обрабатывает GET /documents/{id}/delete — подтверждение удаления.
func (h *DocumentsHandler) HandleDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	id := urlParam(r, "id")
	ret := safeReturn(r.URL.Query().Get("return"))

	data := pages.ConfirmData{
		Layout:    layoutData(r, "nav.documents", rbac.PathDocuments),
		Message:   tr(r, msgDocumentConfirm),
		Action:    "/documents/" + url.PathEscape(id) + "/delete",
		Return:    ret,
		CancelURL: withQuery(rbac.PathDocuments, ret),
	}
	render(w, r, h.logger, pages.Confirm(data))
}

// HandleDelete обрабатывает POST /documents/{id}/delete.
// Документ исчезает из списка только после успешного ответа backend.
func (h *DocumentsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := urlParam(r, "id")
	ret := safeReturn(r.PostFormValue("return"))

	if id == "" {
		uimiddleware.SetFlash(ctx, uimiddleware.FlashError, tr(r, msgDocumentNotFound))
		http.Redirect(w, r, withQuery(rbac.PathDocuments, ret), http.StatusSeeOther)
		return
	}

	if err := h.backend.DeleteDocument(ctx, id); err != nil {
		if redirectIfUnauthorized(w, r, err) {
			return
		}
		h.logger.Warn("Ошибка удаления документа",
			slog.String("document_id", id),
			slog.String("error", err.Error()),
		)
		uimiddleware.SetFlash(ctx, uimiddleware.FlashError, gateway.UserMessage(err, tr(r, msgDocumentDelete)))
		http.Redirect(w, r, withQuery(rbac.PathDocuments, ret), http.StatusSeeOther)
		return
	}

	h.logger.Info("Документ удалён", slog.String("document_id", id))
	uimiddleware.SetFlash(ctx, uimiddleware.FlashSuccess, tr(r, msgDocumentDeleted))
	http.Redirect(w, r, withQuery(rbac.PathDocuments, ret), http.StatusSeeOther)
}

// creatorLabel — имя создателя документа: username, иначе email, иначе "-".
func creatorLabel(d model.Document) string {
	switch {
	case d.CreatorUsername != "":
		return d.CreatorUsername
	case d.CreatorEmail != "":
		return d.CreatorEmail
	default:
		return "-"
	}
}
