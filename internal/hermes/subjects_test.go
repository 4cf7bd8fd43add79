package hermes

import (
	"strings"
	"testing"
)

func TestSubjectsStayInsideStream(t *testing.T) {
	id := "0b6f6a53-3c1b-4c7c-9d8a-4b3f2f1e0a11"
	subjects := []string{
		SubjectProjectCreated(id),
		SubjectProjectStatus(id),
		SubjectProjectDeleted(id),
		SubjectScoreCalculated(id),
		SubjectLedgerPublished(id),
		SubjectLedgerFailed(id),
	}
	prefix := strings.TrimSuffix(SubjectAllEvents, ">")
	for _, s := range subjects {
		if !strings.HasPrefix(s, prefix) {
			t.Errorf("subject %s outside stream filter %s", s, SubjectAllEvents)
		}
		if !strings.Contains(s, id) {
			t.Errorf("subject %s does not carry the project id", s)
		}
	}
}

func TestNoopClient(t *testing.T) {
	var c Client = NoopClient{}
	if err := c.Publish(SubjectScoreCalculated("x"), ScoreCalculatedEvent{Score: 10}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.Close()
}
