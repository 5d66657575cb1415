package database

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

func TestNewDynamoDBConfigFromEnv_Defaults(t *testing.T) {
	t.Setenv("AWS_REGION", "")
	t.Setenv("AWS_ACCESS_KEY_ID", "")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "")
	t.Setenv("DYNAMODB_ENDPOINT", "")

	cfg, err := NewDynamoDBConfigFromEnv(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Region != "us-east-1" {
		t.Fatalf("region = %s, want us-east-1", cfg.Region)
	}

	creds, err := cfg.Credentials.Retrieve(context.Background())
	if err != nil {
		t.Fatalf("retrieve credentials: %v", err)
	}
	if creds.AccessKeyID != "local" || creds.SecretAccessKey != "local" {
		t.Fatalf("expected local placeholder credentials, got %s", creds.AccessKeyID)
	}
}

func TestNewDynamoDBConfigFromEnv_EndpointOverride(t *testing.T) {
	t.Setenv("AWS_REGION", "sa-east-1")
	t.Setenv("DYNAMODB_ENDPOINT", "http://dynamodb:8000")

	cfg, err := NewDynamoDBConfigFromEnv(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.EndpointResolverWithOptions == nil {
		t.Fatal("expected an endpoint resolver for the override")
	}

	ep, err := cfg.EndpointResolverWithOptions.ResolveEndpoint(dynamodb.ServiceID, cfg.Region)
	if err != nil {
		t.Fatalf("resolve endpoint: %v", err)
	}
	if ep.URL != "http://dynamodb:8000" {
		t.Fatalf("endpoint = %s, want http://dynamodb:8000", ep.URL)
	}
	if !ep.HostnameImmutable {
		t.Fatal("local endpoint must be hostname-immutable")
	}
}
