package interview

import (
	"strings"
	"testing"

	"github.com/talentscout/screener/internal/candidate"
)

func TestBuildContextPayloadCollecting(t *testing.T) {
	rec := &candidate.Record{FullName: "Jane", TechStack: "React"}
	payload := buildContextPayload("my phone is coming up", rec)

	if !strings.Contains(payload, "Candidate's message: my phone is coming up") {
		t.Errorf("payload missing candidate message:\n%s", payload)
	}
	if !strings.Contains(payload, "- Full Name: Jane") {
		t.Errorf("payload missing collected fields:\n%s", payload)
	}
	if !strings.Contains(payload, "STILL NEED TO COLLECT (DO NOT END CONVERSATION): Email, Phone, Years Of Experience, Desired Positions, Current Location") {
		t.Errorf("payload missing still-need list:\n%s", payload)
	}
	if !strings.Contains(payload, "Tech stack is provided but other required information is still missing") {
		t.Errorf("payload missing early tech stack note:\n%s", payload)
	}
	if strings.Contains(payload, "All basic information collected!") {
		t.Errorf("technical instruction must not appear while collecting:\n%s", payload)
	}
}

func TestBuildContextPayloadComplete(t *testing.T) {
	rec := &candidate.Record{
		FullName:          "Jane",
		Email:             "gw@kk.in",
		Phone:             "1234567896",
		YearsOfExperience: "2",
		DesiredPositions:  "Frontend",
		CurrentLocation:   "Delhi",
		TechStack:         "React",
	}
	payload := buildContextPayload("that's everything", rec)

	if strings.Contains(payload, "STILL NEED TO COLLECT") {
		t.Errorf("complete record must not list missing fields:\n%s", payload)
	}
	if !strings.Contains(payload, "All basic information collected! Now you MUST ask technical questions.") {
		t.Errorf("payload missing technical instruction:\n%s", payload)
	}
	if !strings.Contains(payload, "The candidate has 2 years of experience.") {
		t.Errorf("payload missing experience calibration:\n%s", payload)
	}
}

func TestBuildContextPayloadSkipsTechPromptOnceStarted(t *testing.T) {
	rec := &candidate.Record{
		FullName:          "Jane",
		Email:             "gw@kk.in",
		Phone:             "1234567896",
		YearsOfExperience: "2",
		DesiredPositions:  "Frontend",
		CurrentLocation:   "Delhi",
		TechStack:         "React",
		TechPhaseStarted:  true,
	}
	payload := buildContextPayload("my answer", rec)

	if strings.Contains(payload, "All basic information collected!") {
		t.Errorf("technical instruction must only appear once:\n%s", payload)
	}
}

func TestTechnicalQuestionsPromptDifficulty(t *testing.T) {
	tests := []struct {
		name  string
		years string
		want  string
	}{
		{"junior", "1", "beginner to intermediate"},
		{"mid", "3", "Current difficulty level: intermediate\n"},
		{"senior", "8", "intermediate to advanced"},
		{"unparseable", "abc", "beginner to intermediate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := technicalQuestionsPrompt("React, Node", tt.years)
			if !strings.Contains(got, tt.want) {
				t.Errorf("prompt for %s years missing %q:\n%s", tt.years, tt.want, got)
			}
			if !strings.Contains(got, "fundamental question about React") {
				t.Errorf("prompt should target primary tech:\n%s", got)
			}
		})
	}
}

func TestClosingMessage(t *testing.T) {
	withName := closingMessage(&candidate.Record{FullName: "Jane"})
	if !strings.Contains(withName, "speak with me today, Jane!") {
		t.Errorf("missing personalization: %q", withName)
	}

	anonymous := closingMessage(&candidate.Record{})
	if !strings.Contains(anonymous, "speak with me today, there!") {
		t.Errorf("missing fallback personalization: %q", anonymous)
	}
}

func TestSystemPromptEmbedded(t *testing.T) {
	if !strings.Contains(systemPrompt, "TalentScout") {
		t.Error("system prompt should introduce the assistant")
	}
	if !strings.Contains(systemPrompt, "ONE AT A TIME") {
		t.Error("system prompt should demand one question per turn")
	}
}
