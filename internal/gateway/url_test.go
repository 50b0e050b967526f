package gateway

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", DefaultBaseURL},
		{"   ", DefaultBaseURL},
		{"http://api.mygov.uz", "http://api.mygov.uz/api"},
		{"http://api.mygov.uz/", "http://api.mygov.uz/api"},
		{"http://api.mygov.uz///", "http://api.mygov.uz/api"},
		{"http://api.mygov.uz/api", "http://api.mygov.uz/api"},
		{"http://api.mygov.uz/api/", "http://api.mygov.uz/api"},
		{"http://api.mygov.uz/api/api", "http://api.mygov.uz/api"},
		{"http://api.mygov.uz/api/api//", "http://api.mygov.uz/api"},
		{"http://localhost:5001", "http://localhost:5001/api"},
		{"https://gw.local/mygov", "https://gw.local/mygov/api"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := NormalizeBaseURL(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, NormalizeBaseURL(got), "нормализация должна быть идемпотентной")
			assert.True(t, strings.HasSuffix(got, "/api"))
			assert.False(t, strings.HasSuffix(got, "/api/api"))
		})
	}
}

func TestResolveBaseURL(t *testing.T) {
	assert.Equal(t, "http://a/api", ResolveBaseURL("http://a", "http://b"))
	assert.Equal(t, "http://b/api", ResolveBaseURL("", "http://b/api/"))
	assert.Equal(t, DefaultBaseURL, ResolveBaseURL("", ""))
	assert.Equal(t, DefaultBaseURL, ResolveBaseURL())
}

func TestDownloadURLs(t *testing.T) {
	inputs := []string{
		"",
		"http://api.mygov.uz",
		"http://api.mygov.uz/",
		"http://api.mygov.uz/api",
		"http://api.mygov.uz/api/",
		"http://api.mygov.uz/api/api",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			origin := DownloadOrigin(in)
			assert.False(t, strings.HasSuffix(origin, "/api"), "origin без /api: %s", origin)
			assert.Equal(t, origin, DownloadOrigin(origin), "DownloadOrigin должен быть идемпотентным")

			// origin из уже нормализованного адреса тот же
			assert.Equal(t, origin, DownloadOrigin(NormalizeBaseURL(in)))

			for _, u := range []string{
				DocumentDownloadURL(origin, "42", FormatPDF),
				DocumentDownloadURL(origin, "42", FormatDOCX),
				FileDownloadURL(origin, "doc.pdf"),
			} {
				assert.NotContains(t, u, "/api/api")
			}
		})
	}

	assert.Equal(t, "http://localhost:5001", DownloadOrigin(""))
	assert.Equal(t, "http://h/api/documents/7/download", DocumentDownloadURL("http://h", "7", FormatPDF))
	assert.Equal(t, "http://h/api/documents/7/download/docx", DocumentDownloadURL("http://h/", "7", FormatDOCX))
	assert.Equal(t, "http://h/api/files/download/%D0%BE%D1%82%D1%87%D1%91%D1%82%201.pdf",
		FileDownloadURL("http://h", "отчёт 1.pdf"))
}

func TestAbsoluteURL(t *testing.T) {
	assert.Equal(t, "", AbsoluteURL("http://h", ""))
	assert.Equal(t, "https://cdn/x.pdf", AbsoluteURL("http://h", "https://cdn/x.pdf"))
	assert.Equal(t, "http://h/api/documents/1/download", AbsoluteURL("http://h/", "/api/documents/1/download"))
	assert.Equal(t, "http://h/api/documents/1/download", AbsoluteURL("http://h", "api/documents/1/download"))
	assert.Equal(t, "http://h/api/documents/1/download", AbsoluteURL("http://h", "/api/api/documents/1/download"))
}
