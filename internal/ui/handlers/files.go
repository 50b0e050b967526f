// Файл files.go — список файлов хранилища backend: сводка, фильтры,
// сортировка по времени создания, скачивание и удаление.
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/bigkaa/mygov-admin/internal/domain/model"
	"github.com/bigkaa/mygov-admin/internal/domain/rbac"
	"github.com/bigkaa/mygov-admin/internal/gateway"
	"github.com/bigkaa/mygov-admin/internal/listquery"
	uimiddleware "github.com/bigkaa/mygov-admin/internal/ui/middleware"
	"github.com/bigkaa/mygov-admin/internal/ui/pages"
)

// pathFiles — адрес списка файлов.
const pathFiles = "/files"

// Сообщения раздела файлов.
const (
	msgFilesLoad   = "files.msg.load_error"
	msgFileDelete  = "files.msg.delete_error"
	msgFileDeleted = "files.msg.deleted"
	msgFileConfirm = "files.msg.confirm_delete"
)

// FilesBackend — операции backend с файлами.
type FilesBackend interface {
	ListFiles(ctx context.Context) ([]model.File, error)
	DeleteFile(ctx context.Context, name string) error
}

// FilesHandler — обработчики списка файлов.
type FilesHandler struct {
	backend FilesBackend
	origin  string
	cfg     ListConfig
	logger  *slog.Logger
}

// NewFilesHandler создаёт новый FilesHandler.
func NewFilesHandler(backend FilesBackend, origin string, cfg ListConfig, logger *slog.Logger) *FilesHandler {
	return &FilesHandler{
		backend: backend,
		origin:  origin,
		cfg:     cfg,
		logger:  logger.With(slog.String("component", "ui.files")),
	}
}

// HandleList обрабатывает GET /files.
// Сводка считается по всем файлам после фильтров, а не по текущей странице.
func (h *FilesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	role, actor := currentActor(r)
	elevated := rbac.IsElevated(role)
	loc := h.cfg.location()

	st := listquery.ParseState(r.URL.Query(), listquery.FileSchema, h.cfg.DefaultPageSize, elevated)

	var loadErr string
	files, err := h.backend.ListFiles(ctx)
	if err != nil {
		if redirectIfUnauthorized(w, r, err) {
			return
		}
		h.logger.Error("Ошибка получения списка файлов", slog.String("error", err.Error()))
		loadErr = gateway.UserMessage(err, tr(r, msgFilesLoad))
	}

	res := listquery.Project(files, st, listquery.FileSchema, listquery.Options{
		Actor:    &actor,
		Location: loc,
	})
	st = st.WithPage(res.Page)
	stats := listquery.ComputeStats(res.Filtered)

	lv := listView{path: pathFiles, state: st, elevated: elevated, sizes: h.cfg.PageSizes}
	returnQuery := st.Query()

	rows := make([]pages.FileRow, 0, len(res.Visible))
	for _, f := range res.Visible {
		row := pages.FileRow{
			Name:        f.Name,
			Extension:   f.Extension(),
			Size:        listquery.FormatBytes(f.Size),
			PatientName: f.PatientName,
			DocNumber:   f.DocNumber,
			CreatedAt:   formatTimestamp(f.Timestamp(), loc),
			DownloadURL: gateway.FileDownloadURL(h.origin, f.Name),
		}
		if rbac.CanDelete(role) {
			row.DeleteURL = withQuery("/files/"+url.PathEscape(f.Name)+"/delete", url.Values{"return": {returnQuery}}.Encode())
		}
		rows = append(rows, row)
	}

	data := pages.FileListData{
		Layout: layoutData(r, "nav.files", pathFiles),
		Rows:   rows,
		Stats: pages.FileStats{
			Total:     stats.Total,
			PDF:       stats.Count("pdf"),
			DOCX:      stats.Count("docx"),
			TotalSize: listquery.FormatBytes(stats.TotalBytes),
		},
		Filters: pages.FileFilters{
			Search:   st.Search,
			DateFrom: st.Filters.DateFrom,
			DateTo:   st.Filters.DateTo,
			Type:     st.Filters.Type,
		},
		Hidden: lv.hidden(),
		Sort: map[string]pages.SortLink{
			listquery.FieldCreatedAt: lv.sortLink(listquery.FieldCreatedAt),
		},
		Nav:       lv.nav(len(res.Filtered), res.Page, res.TotalPages),
		ResetURL:  lv.resetURL(),
		LoadError: loadErr,
	}
	render(w, r, h.logger, pages.FileList(data))
}

// HandleDeleteConfirm обрабатывает GET /files/{name}/delete.
func (h *FilesHandler) HandleDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	name := urlParam(r, "name")
	ret := safeReturn(r.URL.Query().Get("return"))

	data := pages.ConfirmData{
		Layout:    layoutData(r, "nav.files", pathFiles),
		Message:   trf(r, msgFileConfirm, name),
		Action:    "/files/" + url.PathEscape(name) + "/delete",
		Return:    ret,
		CancelURL: withQuery(pathFiles, ret),
	}
	render(w, r, h.logger, pages.Confirm(data))
}

// HandleDelete обрабатывает POST /files/{name}/delete (только super_admin).
// После успеха список загружается заново.
func (h *FilesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := urlParam(r, "name")
	ret := safeReturn(r.PostFormValue("return"))

	if err := h.backend.DeleteFile(ctx, name); err != nil {
		if redirectIfUnauthorized(w, r, err) {
			return
		}
		h.logger.Warn("Ошибка удаления файла",
			slog.String("file", name),
			slog.String("error", err.Error()),
		)
		uimiddleware.SetFlash(ctx, uimiddleware.FlashError, trf(r, msgFileDelete, gateway.UserMessage(err, err.Error())))
		http.Redirect(w, r, withQuery(pathFiles, ret), http.StatusSeeOther)
		return
	}

	h.logger.Info("Файл удалён", slog.String("file", name))
	uimiddleware.SetFlash(ctx, uimiddleware.FlashSuccess, tr(r, msgFileDeleted))
	http.Redirect(w, r, withQuery(pathFiles, ret), http.StatusSeeOther)
}
