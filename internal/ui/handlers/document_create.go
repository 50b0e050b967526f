// document_create.go — форма генерации документа и показ результата с QR-кодом.
package handlers

import (
	"context"
	"encoding/base64"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/bigkaa/mygov-admin/internal/domain/model"
	"github.com/bigkaa/mygov-admin/internal/gateway"
	"github.com/bigkaa/mygov-admin/internal/ui/pages"
)

// Ошибки формы документа.
const (
	msgCreateRequired = "create.msg.required"
	msgCreateParse    = "create.msg.parse_error"
)

// qrSize — сторона QR-кода на странице результата.
const qrSize = 256

// pathCreateDocument — адрес формы документа.
const pathCreateDocument = "/documents/create"

// GenerateBackend — генерация документа backend.
type GenerateBackend interface {
	GenerateDocument(ctx context.Context, req model.GenerateRequest) (*model.GenerateResult, error)
}

// DocumentCreateHandler — обработчики формы документа.
type DocumentCreateHandler struct {
	backend GenerateBackend
	origin  string
	loc     *time.Location
	now     func() time.Time
	logger  *slog.Logger
}

// NewDocumentCreateHandler создаёт новый DocumentCreateHandler.
// loc — часовой пояс даты выдачи по умолчанию.
func NewDocumentCreateHandler(backend GenerateBackend, origin string, loc *time.Location, logger *slog.Logger) *DocumentCreateHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &DocumentCreateHandler{
		backend: backend,
		origin:  origin,
		loc:     loc,
		now:     time.Now,
		logger:  logger.With(slog.String("component", "ui.document_create")),
	}
}

// HandleForm обрабатывает GET /documents/create. Дата выдачи — сегодня.
func (h *DocumentCreateHandler) HandleForm(w http.ResponseWriter, r *http.Request) {
	data := pages.DocumentFormData{
		Layout: layoutData(r, "nav.create_document", pathCreateDocument),
		Values: model.GenerateRequest{IssueDate: h.today()},
	}
	render(w, r, h.logger, pages.DocumentCreate(data))
}

// HandleCreate обрабатывает POST /documents/create.
// После успеха поля пациента очищаются, данные организации и врача остаются.
func (h *DocumentCreateHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := pages.DocumentFormData{
		Layout: layoutData(r, "nav.create_document", pathCreateDocument),
	}

	if err := r.ParseForm(); err != nil {
		data.Error = tr(r, msgCreateParse)
		h.renderForm(w, r, http.StatusBadRequest, data)
		return
	}
	req := generateRequestFromForm(r.PostForm)
	if req.IssueDate == "" {
		req.IssueDate = h.today()
	}
	data.Values = req

	if missing := missingRequired(req); len(missing) > 0 {
		data.Error = tr(r, msgCreateRequired)
		h.renderForm(w, r, http.StatusBadRequest, data)
		return
	}

	res, err := h.backend.GenerateDocument(ctx, req)
	if err != nil {
		if redirectIfUnauthorized(w, r, err) {
			return
		}
		h.logger.Warn("Ошибка генерации документа",
			slog.String("organization", req.Organization),
			slog.String("error", err.Error()),
		)
		data.Error = gateway.GenerateErrorMessage(err)
		h.renderForm(w, r, http.StatusBadGateway, data)
		return
	}
	if !res.Success {
		data.Error = res.Message
		if data.Error == "" {
			data.Error = gateway.MsgGenerateFallback
		}
		h.renderForm(w, r, http.StatusBadGateway, data)
		return
	}

	h.logger.Info("Документ сгенерирован",
		slog.String("doc_number", res.DocNumber),
		slog.String("document_id", res.DocumentID.String()),
	)

	data.Result = h.result(res)
	data.Values = req.ResetPatient()
	h.renderForm(w, r, http.StatusOK, data)
}

// result собирает блок результата: абсолютная ссылка и QR-код.
func (h *DocumentCreateHandler) result(res *model.GenerateResult) *pages.DocumentResult {
	link := gateway.AbsoluteURL(h.origin, res.DownloadURL)
	if res.DownloadURL == "" && res.DocumentID != "" {
		link = gateway.DocumentDownloadURL(h.origin, res.DocumentID.String(), gateway.FormatPDF)
	}

	out := &pages.DocumentResult{
		DocNumber:   res.DocNumber,
		PinCode:     res.PinCode,
		DownloadURL: link,
	}
	if link == "" {
		return out
	}

	png, err := qrcode.Encode(link, qrcode.Medium, qrSize)
	if err != nil {
		h.logger.Warn("Ошибка построения QR-кода", slog.String("error", err.Error()))
		return out
	}
	out.QRDataURI = "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
	out.QRDownloadURL = "/api/qr?" + url.Values{"data": {link}, "download": {"1"}}.Encode()
	return out
}

func (h *DocumentCreateHandler) today() string {
	return h.now().In(h.loc).Format("2006-01-02")
}

func (h *DocumentCreateHandler) renderForm(w http.ResponseWriter, r *http.Request, status int, data pages.DocumentFormData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pages.DocumentCreate(data).Render(r.Context(), w); err != nil {
		h.logger.Error("Ошибка рендеринга формы документа", slog.String("error", err.Error()))
	}
}

// generateRequestFromForm читает поля формы документа.
func generateRequestFromForm(form url.Values) model.GenerateRequest {
	get := func(key string) string {
		return strings.TrimSpace(form.Get(key))
	}
	return model.GenerateRequest{
		PatientName:                get("patient_name"),
		Gender:                     get("gender"),
		Age:                        get("age"),
		JSHSHIR:                    get("jshshir"),
		Address:                    get("address"),
		AttachedMedicalInstitution: get("attached_medical_institution"),
		Diagnosis:                  get("diagnosis"),
		DiagnosisICD10Code:         get("diagnosis_icd10_code"),
		FinalDiagnosis:             get("final_diagnosis"),
		FinalDiagnosisICD10Code:    get("final_diagnosis_icd10_code"),
		Organization:               get("organization"),
		DoctorName:                 get("doctor_name"),
		DoctorPosition:             get("doctor_position"),
		DepartmentHeadName:         get("department_head_name"),
		DaysOffFrom:                get("days_off_from"),
		DaysOffTo:                  get("days_off_to"),
		IssueDate:                  get("issue_date"),
	}
}

// missingRequired возвращает имена незаполненных обязательных полей.
func missingRequired(req model.GenerateRequest) []string {
	required := []struct {
		name  string
		value string
	}{
		{"patient_name", req.PatientName},
		{"gender", req.Gender},
		{"age", req.Age},
		{"diagnosis", req.Diagnosis},
		{"organization", req.Organization},
		{"doctor_name", req.DoctorName},
		{"doctor_position", req.DoctorPosition},
	}
	var missing []string
	for _, f := range required {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}
