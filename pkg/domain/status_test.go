package domain_test

import (
	"testing"

	"github.com/felixgeelhaar/dailyread/pkg/domain"
)

func TestResolveStatus_EmptyHistory(t *testing.T) {
	status := domain.ResolveStatus(map[string][]string{}, domain.DefaultPriority)
	if status != domain.StatusPending {
		t.Errorf("expected %s, got %s", domain.StatusPending, status)
	}
}

func TestResolveStatus_UnrecognizedEventsOnly(t *testing.T) {
	dates := map[string][]string{
		"2023-06-15": {"Order placed", "Contract signed"},
	}
	status := domain.ResolveStatus(dates, domain.DefaultPriority)
	if status != domain.StatusPending {
		t.Errorf("expected %s, got %s", domain.StatusPending, status)
	}
}

func TestResolveStatus_SingleRecognizedEvent(t *testing.T) {
	dates := map[string][]string{
		"2021-01-02": {"Samples Received"},
	}
	status := domain.ResolveStatus(dates, domain.DefaultPriority)
	if status != "Samples Received" {
		t.Errorf("expected Samples Received, got %s", status)
	}
}

func TestResolveStatus_HighestPriorityWinsRegardlessOfDate(t *testing.T) {
	// The more advanced event appears on the EARLIER date; rank in the
	// priority list must win, not recency.
	dates := map[string][]string{
		"2023-06-01": {"All Samples Sequenced"},
		"2023-06-15": {"Samples Received"},
	}
	status := domain.ResolveStatus(dates, domain.DefaultPriority)
	if status != "All Samples Sequenced" {
		t.Errorf("expected All Samples Sequenced, got %s", status)
	}
}

func TestResolveStatus_UnknownEventsDoNotBlock(t *testing.T) {
	dates := map[string][]string{
		"2023-06-15": {"Something else entirely", "Library QC Finished"},
	}
	status := domain.ResolveStatus(dates, domain.DefaultPriority)
	if status != "Library QC Finished" {
		t.Errorf("expected Library QC Finished, got %s", status)
	}
}

func TestResolveStatus_CustomPriority(t *testing.T) {
	priority := []string{"B", "A"}
	dates := map[string][]string{
		"2023-01-01": {"A"},
		"2023-01-02": {"B"},
	}
	if status := domain.ResolveStatus(dates, priority); status != "B" {
		t.Errorf("expected B, got %s", status)
	}
}

func TestReversePriority(t *testing.T) {
	reversed := domain.ReversePriority(domain.DefaultPriority)
	if reversed[0] != "Samples Received" {
		t.Errorf("expected Samples Received first, got %s", reversed[0])
	}
	if reversed[len(reversed)-1] != "All Raw Data Delivered" {
		t.Errorf("expected All Raw Data Delivered last, got %s", reversed[len(reversed)-1])
	}
	// Original must not be mutated.
	if domain.DefaultPriority[0] != "All Raw Data Delivered" {
		t.Errorf("DefaultPriority was mutated")
	}
}

func TestStatusVocabulary_EveryPriorityHasIconAndDescription(t *testing.T) {
	for _, status := range domain.DefaultPriority {
		if _, ok := domain.StatusIcons[status]; !ok {
			t.Errorf("no icon for %s", status)
		}
		if _, ok := domain.StatusDescriptions[status]; !ok {
			t.Errorf("no description for %s", status)
		}
	}
	if _, ok := domain.StatusDescriptions[domain.StatusPending]; !ok {
		t.Errorf("no description for %s", domain.StatusPending)
	}
}
