package model

// Document — сгенерированный документ (GET /documents).
type Document struct {
	ID              FlexibleID `json:"id"`
	DocNumber       string     `json:"doc_number"`
	MyGovDocNumber  string     `json:"mygov_doc_number"`
	PatientName     string     `json:"patient_name"`
	Diagnosis       string     `json:"diagnosis"`
	Organization    string     `json:"organization"`
	CreatedAt       string     `json:"created_at"`
	CreatorID       FlexibleID `json:"creator_id,omitempty"`
	CreatorIDAlt    FlexibleID `json:"creatorId,omitempty"`
	CreatorUsername string     `json:"creator_username,omitempty"`
	CreatorEmail    string     `json:"creator_email,omitempty"`
	PinCode         string     `json:"pin_code,omitempty"`
}

// Creator возвращает идентичность создателя документа.
// creator_id имеет приоритет над creatorId.
func (d Document) Creator() Identity {
	return Identity{
		ID:       FirstPresent(d.CreatorID.String(), d.CreatorIDAlt.String()),
		Username: d.CreatorUsername,
		Email:    d.CreatorEmail,
	}
}

// GenerateRequest — тело запроса POST /documents/generate.
type GenerateRequest struct {
	PatientName                string `json:"patient_name"`
	Gender                     string `json:"gender"`
	Age                        string `json:"age"`
	JSHSHIR                    string `json:"jshshir"`
	Address                    string `json:"address"`
	AttachedMedicalInstitution string `json:"attached_medical_institution"`
	Diagnosis                  string `json:"diagnosis"`
	DiagnosisICD10Code         string `json:"diagnosis_icd10_code"`
	FinalDiagnosis             string `json:"final_diagnosis"`
	FinalDiagnosisICD10Code    string `json:"final_diagnosis_icd10_code"`
	Organization               string `json:"organization"`
	DoctorName                 string `json:"doctor_name"`
	DoctorPosition             string `json:"doctor_position"`
	DepartmentHeadName         string `json:"department_head_name"`
	DaysOffFrom                string `json:"days_off_from"`
	DaysOffTo                  string `json:"days_off_to"`
	IssueDate                  string `json:"issue_date"`
}

// ResetPatient очищает поля пациента после успешной генерации.
// Организация, врач и даты выдачи сохраняются для следующего документа.
func (g GenerateRequest) ResetPatient() GenerateRequest {
	g.PatientName = ""
	g.Age = ""
	g.JSHSHIR = ""
	g.Address = ""
	g.Diagnosis = ""
	g.DiagnosisICD10Code = ""
	g.FinalDiagnosis = ""
	g.FinalDiagnosisICD10Code = ""
	g.DaysOffFrom = ""
	g.DaysOffTo = ""
	return g
}

// GenerateResult — ответ POST /documents/generate.
type GenerateResult struct {
	Success     bool       `json:"success"`
	DocNumber   string     `json:"doc_number"`
	PinCode     string     `json:"pin_code"`
	DownloadURL string     `json:"download_url"`
	DocumentID  FlexibleID `json:"document_id"`
	Message     string     `json:"message,omitempty"`
}
