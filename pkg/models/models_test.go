package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFeaturedRepoDefaults(t *testing.T) {
	tests := []struct {
		name         string
		description  string
		language     string
		wantDesc     string
		wantLanguage string
	}{
		{
			name:         "All fields present",
			description:  "A CLI tool",
			language:     "Go",
			wantDesc:     "A CLI tool",
			wantLanguage: "Go",
		},
		{
			name:         "Missing description",
			description:  "",
			language:     "Go",
			wantDesc:     DefaultDescription,
			wantLanguage: "Go",
		},
		{
			name:         "Missing language",
			description:  "A CLI tool",
			language:     "",
			wantDesc:     "A CLI tool",
			wantLanguage: DefaultLanguage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewFeaturedRepo("tool", tt.description, tt.language, 3, 1, "https://example.com", "2024-01-01T00:00:00Z")
			assert.Equal(t, tt.wantDesc, repo.Description)
			assert.Equal(t, tt.wantLanguage, repo.Language)
			assert.Equal(t, "tool", repo.Name)
			assert.Equal(t, 3, repo.Stars)
		})
	}
}

func TestContactRequestComplete(t *testing.T) {
	tests := []struct {
		name     string
		request  ContactRequest
		expected bool
	}{
		{
			name:     "All fields set",
			request:  ContactRequest{Name: "A", Email: "a@b.com", ProjectType: "Web App", Message: "hi"},
			expected: true,
		},
		{
			name:     "Empty project type",
			request:  ContactRequest{Name: "A", Email: "a@b.com", ProjectType: "", Message: "hi"},
			expected: false,
		},
		{
			name:     "Empty message",
			request:  ContactRequest{Name: "A", Email: "a@b.com", ProjectType: "Web App"},
			expected: false,
		},
		{
			name:     "Empty request",
			request:  ContactRequest{},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.request.Complete())
		})
	}
}
