package publishers

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRegistryEnabledFilter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "publishers.yaml")
	raw := `
publishers:
  - id: http1
    type: http
    enabled: false
    http:
      url: https://example.com
  - id: http2
    type: http
    enabled: true
    http:
      url: https://example.com/2
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	enabled := reg.Enabled()
	if len(enabled) != 1 || enabled[0].ID != "http2" {
		t.Fatalf("expected only http2 enabled, got %#v", enabled)
	}
}

func TestValidatePublisherConfigRejectsMissingHTTP(t *testing.T) {
	err := validatePublisherConfig(PublisherConfig{
		ID:   "h1",
		Type: TypeHTTP,
	})
	if err == nil {
		t.Fatalf("expected validation error for missing http block")
	}
}

func TestLoadRegistryAllTypes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "publishers.json")
	raw := `{"publishers":[
  {"id":"q","type":"SQS","sqs":{"uri":"https://sqs.local/q","region":"eu-west-3"}},
  {"id":"t","type":"sns","sns":{"topic_arn":"arn:aws:sns:eu-west-3:1:t","region":"eu-west-3","credentials":{"access_key_id":" AK ","secret_access_key":"SK"}}},
  {"id":"g","type":"pubsub","pubsub":{"project_id":"p","topic":"calls"}},
  {"id":"l","type":"log"}
]}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if len(reg.All()) != 4 {
		t.Fatalf("expected 4 publishers, got %d", len(reg.All()))
	}
	q, _ := reg.ByID("q")
	if q.Type != TypeSQS {
		t.Fatalf("expected type normalized to sqs, got %q", q.Type)
	}
	sns, _ := reg.ByID("t")
	if !sns.SNS.Credentials.static() || sns.SNS.Credentials.AccessKeyID != "AK" {
		t.Fatalf("expected trimmed static credentials, got %+v", sns.SNS.Credentials)
	}
	l, _ := reg.ByID("l")
	if l.Log == nil || l.Log.Level != "info" {
		t.Fatalf("expected default log level, got %+v", l.Log)
	}
}

func TestValidatePublisherConfigRejectsIncompleteBlocks(t *testing.T) {
	cases := []PublisherConfig{
		{ID: "s", Type: TypeSNS, SNS: &SNSPublisherConfig{Region: "eu-west-3"}},
		{ID: "g", Type: TypePubSub, PubSub: &PubSubPublisherConfig{ProjectID: "p"}},
		{ID: "q", Type: TypeSQS, SQS: &SQSPublisherConfig{QueueURL: "https://sqs.local/q"}},
		{ID: "l", Type: TypeLog, Log: &LogPublisherConfig{Level: "trace"}},
		{ID: "k", Type: "kafka"},
	}
	for _, cfg := range cases {
		if err := validatePublisherConfig(sanitizePublisherConfig(cfg)); err == nil {
			t.Errorf("expected validation error for %q", cfg.ID)
		}
	}
}

func TestFromFileEmptyPath(t *testing.T) {
	f, err := FromFile(context.Background(), "", nil)
	if err != nil {
		t.Fatalf("FromFile: %v", err)
	}
	if f.Size() != 0 {
		t.Fatalf("expected empty fanout, got %d", f.Size())
	}
}
