package pages

import (
	"github.com/a-h/templ"

	"github.com/bigkaa/mygov-admin/internal/domain/model"
)

// DocumentFormData — форма создания документа.
type DocumentFormData struct {
	Layout LayoutData
	Values model.GenerateRequest
	Error  string
	// Result — результат последней успешной генерации
	Result *DocumentResult
}

// DocumentResult — выданный документ.
type DocumentResult struct {
	DocNumber   string
	PinCode     string
	DownloadURL string
	// QRDataURI — PNG QR-кода ссылки в виде data URI
	QRDataURI string
	// QRDownloadURL — ссылка на PNG QR-кода для скачивания
	QRDownloadURL string
}

// formField — поле формы документа.
type formField struct {
	typ      string
	name     string
	labelKey string
	value    string
	required bool
}

// DocumentCreate — форма генерации документа и блок результата.
func DocumentCreate(data DocumentFormData) templ.Component {
	v := data.Values
	patient := []formField{
		{"text", "patient_name", "create.patient_name", v.PatientName, true},
		{"text", "jshshir", "create.jshshir", v.JSHSHIR, false},
		{"text", "age", "create.age", v.Age, true},
		{"text", "address", "create.address", v.Address, false},
		{"text", "attached_medical_institution", "create.attached_medical_institution", v.AttachedMedicalInstitution, false},
	}
	diagnosis := []formField{
		{"text", "diagnosis", "create.diagnosis", v.Diagnosis, true},
		{"text", "diagnosis_icd10_code", "create.diagnosis_icd10_code", v.DiagnosisICD10Code, false},
		{"text", "final_diagnosis", "create.final_diagnosis", v.FinalDiagnosis, false},
		{"text", "final_diagnosis_icd10_code", "create.final_diagnosis_icd10_code", v.FinalDiagnosisICD10Code, false},
		{"date", "days_off_from", "create.days_off_from", v.DaysOffFrom, false},
		{"date", "days_off_to", "create.days_off_to", v.DaysOffTo, false},
	}
	issuer := []formField{
		{"text", "organization", "create.organization", v.Organization, true},
		{"date", "issue_date", "create.issue_date", v.IssueDate, false},
		{"text", "doctor_name", "create.doctor_name", v.DoctorName, true},
		{"text", "doctor_position", "create.doctor_position", v.DoctorPosition, true},
		{"text", "department_head_name", "create.department_head_name", v.DepartmentHeadName, false},
	}

	content := component(func(p *printer) {
		if data.Result != nil {
			documentResult(p, data.Result)
		}
		if data.Error != "" {
			alert(p, &Alert{Kind: "error", Message: data.Error})
		}

		p.raw(`<form method="post" action="/documents/create" class="card form">`)
		fieldset(p, "create.section.patient", patient, func() {
			p.raw(`<label for="gender">`)
			p.t("create.gender")
			p.raw(` *</label><select id="gender" name="gender" required>`)
			for _, opt := range []struct{ value, key string }{{"", "create.gender_choose"}, {"Erkak", "create.gender_male"}, {"Ayol", "create.gender_female"}} {
				p.raw(`<option`)
				p.attr("value", opt.value)
				if opt.value == v.Gender {
					p.raw(` selected`)
				}
				p.raw(`>`)
				p.t(opt.key)
				p.raw(`</option>`)
			}
			p.raw(`</select>`)
		})
		fieldset(p, "create.section.diagnosis", diagnosis, nil)
		fieldset(p, "create.section.issuer", issuer, nil)
		p.raw(`<button type="submit" class="btn btn-primary">`)
		p.t("create.submit")
		p.raw(`</button></form>`)
	})
	return Layout(data.Layout, content)
}

// fieldset пишет группу полей; extra дописывает поля вне общего шаблона.
func fieldset(p *printer, legendKey string, fields []formField, extra func()) {
	p.raw(`<fieldset><legend>`)
	p.t(legendKey)
	p.raw(`</legend>`)
	for _, f := range fields {
		input(p, f.typ, f.name, f.labelKey, f.value, f.required)
	}
	if extra != nil {
		extra()
	}
	p.raw(`</fieldset>`)
}

// documentResult пишет номер, PIN-код, ссылку и QR-код выданного документа.
func documentResult(p *printer, r *DocumentResult) {
	p.raw(`<div class="card result"><h2>`)
	p.t("create.result.title")
	p.raw(`</h2><dl><dt>`)
	p.t("create.result.doc_number")
	p.raw(`</dt><dd>`)
	p.text(r.DocNumber)
	p.raw(`</dd><dt>`)
	p.t("create.result.pin_code")
	p.raw(`</dt><dd class="pin">`)
	p.text(r.PinCode)
	p.raw(`</dd><dt>`)
	p.t("create.result.download")
	p.raw(`</dt><dd><a target="_blank" rel="noopener"`)
	p.href("href", r.DownloadURL)
	p.raw(`>`)
	p.text(r.DownloadURL)
	p.raw(`</a></dd></dl>`)
	if r.QRDataURI != "" {
		p.raw(`<div class="qr"><img width="200" height="200"`)
		// data:image/png не проходит templ.URL, значение формируется сервером.
		p.attr("src", r.QRDataURI)
		p.attr("alt", p.tr("create.result.qr"))
		p.raw(`><a class="btn"`)
		p.href("href", r.QRDownloadURL)
		p.raw(`>`)
		p.t("create.result.qr_download")
		p.raw(`</a></div>`)
	}
	p.raw(`</div>`)
}
