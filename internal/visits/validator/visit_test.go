package validator

import (
	"io"
	"testing"

	"homeward/pkg/logger"
	"homeward/pkg/model"
)

func newTestValidator(t *testing.T) *VisitValidator {
	t.Helper()
	return NewVisitValidator(logger.New(logger.Config{Output: io.Discard}))
}

func validSchedule() *model.VisitSchedule {
	return &model.VisitSchedule{
		PetID:         "64a1f0c2e4b0a1b2c3d4e5f6",
		StateID:       "NY",
		PurchaserName: "Alice Smith",
		Phone:         "+1 (212) 555-0100",
		VisitAtUTC:    "2025-06-01T18:30:00Z",
	}
}

func TestValidateSchedule_Phone(t *testing.T) {
	tests := []struct {
		name    string
		phone   string
		wantErr bool
	}{
		{"plain digits", "2125550100", false},
		{"international with punctuation", "+1 (212) 555-0100", false},
		{"dotted", "212.555.0100", false},
		{"too short", "12345", true},
		{"too long", "123456789012345678901", true},
		{"letters", "call-me-maybe", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSchedule()
			req.Phone = tt.phone

			err := newTestValidator(t).ValidateSchedule(req)
			if tt.wantErr && err == nil {
				t.Errorf("expected error for phone %q, got nil", tt.phone)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected phone %q to validate, got %v", tt.phone, err)
			}
		})
	}
}

func TestValidateSchedule_RequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *model.VisitSchedule)
	}{
		{"missing pet id", func(req *model.VisitSchedule) { req.PetID = "" }},
		{"malformed pet id", func(req *model.VisitSchedule) { req.PetID = "abc" }},
		{"missing state", func(req *model.VisitSchedule) { req.StateID = "" }},
		{"missing purchaser", func(req *model.VisitSchedule) { req.PurchaserName = "" }},
		{"no visit time", func(req *model.VisitSchedule) { req.VisitAtUTC = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSchedule()
			tt.mutate(req)

			if err := newTestValidator(t).ValidateSchedule(req); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestValidateCompletion(t *testing.T) {
	tests := []struct {
		name    string
		req     model.VisitCompletion
		wantErr bool
	}{
		{
			name: "valid pass",
			req: model.VisitCompletion{
				VisitID: "64a1f0c2e4b0a1b2c3d4e5f7",
				Outcome: model.OutcomePass,
				Comment: "Fenced yard, calm household.",
			},
		},
		{
			name: "valid fail",
			req: model.VisitCompletion{
				VisitID: "64a1f0c2e4b0a1b2c3d4e5f7",
				Outcome: model.OutcomeFail,
				Comment: "No secure space for the animal.",
			},
		},
		{
			name: "unknown outcome",
			req: model.VisitCompletion{
				VisitID: "64a1f0c2e4b0a1b2c3d4e5f7",
				Outcome: "MAYBE",
				Comment: "Fenced yard, calm household.",
			},
			wantErr: true,
		},
		{
			name: "comment too short after trimming",
			req: model.VisitCompletion{
				VisitID: "64a1f0c2e4b0a1b2c3d4e5f7",
				Outcome: model.OutcomePass,
				Comment: "  ok ",
			},
			wantErr: true,
		},
		{
			name: "missing visit id",
			req: model.VisitCompletion{
				Outcome: model.OutcomePass,
				Comment: "Fenced yard, calm household.",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newTestValidator(t).ValidateCompletion(&tt.req)
			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected success, got %v", err)
			}
		})
	}
}
