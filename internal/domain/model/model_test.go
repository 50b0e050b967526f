package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestFlexibleID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want FlexibleID
	}{
		{"строка", `{"id":"abc"}`, "abc"},
		{"целое число", `{"id":42}`, "42"},
		{"null", `{"id":null}`, ""},
		{"отсутствует", `{}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v struct {
				ID FlexibleID `json:"id"`
			}
			if err := json.Unmarshal([]byte(tt.raw), &v); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if v.ID != tt.want {
				t.Errorf("ID = %q, ожидается %q", v.ID, tt.want)
			}
		})
	}

	var bad struct {
		ID FlexibleID `json:"id"`
	}
	if err := json.Unmarshal([]byte(`{"id":[1]}`), &bad); err == nil {
		t.Error("ожидалась ошибка для массива")
	}
}

func TestProfile_Identity(t *testing.T) {
	p := &Profile{ID: "7", LegacyID: "legacy"}
	if got := p.Identity(); got != "7" {
		t.Errorf("Identity() = %q, ожидается %q", got, "7")
	}

	p = &Profile{LegacyID: "legacy"}
	if got := p.Identity(); got != "legacy" {
		t.Errorf("Identity() = %q, ожидается %q", got, "legacy")
	}

	var nilProfile *Profile
	if got := nilProfile.Identity(); got != "" {
		t.Errorf("Identity() у nil = %q, ожидается пустая строка", got)
	}
}

func TestDocument_Creator(t *testing.T) {
	var d Document
	raw := `{"id":1,"creatorId":5,"creator_username":"ivan","creator_email":"i@x.uz"}`
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	c := d.Creator()
	if c.ID != "5" || c.Username != "ivan" || c.Email != "i@x.uz" {
		t.Errorf("Creator() = %+v", c)
	}

	d.CreatorID = "3"
	if got := d.Creator().ID; got != "3" {
		t.Errorf("creator_id должен иметь приоритет, получено %q", got)
	}
}

func TestFile_TimestampAndExtension(t *testing.T) {
	tests := []struct {
		name string
		file File
		ts   string
		ext  string
	}{
		{
			name: "last_modified приоритетнее",
			file: File{Name: "a.PDF", LastModified: "2024-01-02", CreatedAt: "2024-01-01"},
			ts:   "2024-01-02",
			ext:  "pdf",
		},
		{
			name: "created_at при отсутствии last_modified",
			file: File{Name: "b.docx", CreatedAt: "2024-01-01", DateCreated: "2023-01-01"},
			ts:   "2024-01-01",
			ext:  "docx",
		},
		{
			name: "date_created последний",
			file: File{Name: "c.tar.gz", DateCreated: "2023-01-01"},
			ts:   "2023-01-01",
			ext:  "gz",
		},
		{
			name: "нет ни одного",
			file: File{Name: "README"},
			ts:   "",
			ext:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.file.Timestamp(); got != tt.ts {
				t.Errorf("Timestamp() = %q, ожидается %q", got, tt.ts)
			}
			if got := tt.file.Extension(); got != tt.ext {
				t.Errorf("Extension() = %q, ожидается %q", got, tt.ext)
			}
		})
	}
}

func TestParseTime(t *testing.T) {
	loc := time.FixedZone("UZT", 5*3600)

	tests := []struct {
		in   string
		ok   bool
		want time.Time
	}{
		{"2024-03-15T10:00:00Z", true, time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)},
		{"2024-03-15T10:00:00", true, time.Date(2024, 3, 15, 10, 0, 0, 0, loc)},
		{"2024-03-15 10:00:00", true, time.Date(2024, 3, 15, 10, 0, 0, 0, loc)},
		{"2024-03-15", true, time.Date(2024, 3, 15, 0, 0, 0, 0, loc)},
		{"", false, time.Time{}},
		{"вчера", false, time.Time{}},
	}

	for _, tt := range tests {
		got, ok := ParseTime(tt.in, loc)
		if ok != tt.ok {
			t.Errorf("ParseTime(%q) ok = %v, ожидается %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && !got.Equal(tt.want) {
			t.Errorf("ParseTime(%q) = %v, ожидается %v", tt.in, got, tt.want)
		}
	}
}

func TestLoginResponse_Valid(t *testing.T) {
	user := &Profile{Username: "u", Role: "super_admin"}

	tests := []struct {
		name string
		resp *LoginResponse
		want bool
	}{
		{"nil", nil, false},
		{"полный ответ", &LoginResponse{Success: true, Token: "t", User: user}, true},
		{"без success", &LoginResponse{Token: "t", User: user}, false},
		{"без токена", &LoginResponse{Success: true, User: user}, false},
		{"без пользователя", &LoginResponse{Success: true, Token: "t"}, false},
	}

	for _, tt := range tests {
		if got := tt.resp.Valid(); got != tt.want {
			t.Errorf("%s: Valid() = %v, ожидается %v", tt.name, got, tt.want)
		}
	}
}

func TestUserInput_PasswordOmitted(t *testing.T) {
	data, err := json.Marshal(UserInput{Username: "a", Email: "b", Role: "mygov_admin"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if _, ok := m["password"]; ok {
		t.Errorf("пустой пароль не должен передаваться: %s", data)
	}
}

func TestFirstPresent(t *testing.T) {
	if got := FirstPresent("", "  ", "b", "c"); got != "b" {
		t.Errorf("FirstPresent = %q, ожидается %q", got, "b")
	}
	if got := FirstPresent(); got != "" {
		t.Errorf("FirstPresent() = %q, ожидается пустая строка", got)
	}
}
