package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	azuremod "github.com/Skpow1234/passkit/internal/azure"
)

// Azure configuration set via CLI flags or environment variables.
var (
	azureAccountName      string
	azureConnectionString string
)

func getAzureClient() (*azblob.Client, error) {
	account := azureAccountName
	if account == "" {
		account = os.Getenv("AZURE_STORAGE_ACCOUNT")
	}
	conn := azureConnectionString
	if conn == "" {
		conn = os.Getenv("AZURE_STORAGE_CONNECTION_STRING")
	}
	return azuremod.NewClient(azuremod.ClientOptions{AccountName: account, ConnectionString: conn})
}

// readArtifact reads a local file, stdin ("-") or an az:// blob.
func readArtifact(ctx context.Context, path string, stdin io.Reader) ([]byte, error) {
	switch {
	case path == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	case azuremod.IsURI(path):
		loc, err := azuremod.ParseURI(path)
		if err != nil {
			return nil, err
		}
		client, err := getAzureClient()
		if err != nil {
			return nil, err
		}
		return azuremod.Download(ctx, client, loc)
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read input file: %w", err)
		}
		return data, nil
	}
}

// writeArtifact writes to a local file, stdout ("-") or an az:// blob.
func writeArtifact(ctx context.Context, path string, data []byte, stdout io.Writer) error {
	switch {
	case path == "-":
		_, err := stdout.Write(data)
		return err
	case azuremod.IsURI(path):
		loc, err := azuremod.ParseURI(path)
		if err != nil {
			return err
		}
		client, err := getAzureClient()
		if err != nil {
			return err
		}
		return azuremod.Upload(ctx, client, loc, data)
	default:
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write output file: %w", err)
		}
		return nil
	}
}
