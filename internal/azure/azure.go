// Package azure reads and writes passkit artifacts in Azure Blob Storage.
//
// URI scheme:
//
//	az://container/path/to/blob
//
// Auth order:
//  1. connection string (--azure-connection-string or AZURE_STORAGE_CONNECTION_STRING)
//  2. azidentity.DefaultAzureCredential against the account
//     (--azure-account or AZURE_STORAGE_ACCOUNT)
package azure

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

// Scheme prefixes every blob URI.
const Scheme = "az://"

// Location is a parsed blob URI.
type Location struct {
	Container string
	Blob      string
}

func (l Location) String() string {
	return Scheme + l.Container + "/" + l.Blob
}

// IsURI reports whether path names a blob.
func IsURI(path string) bool {
	return strings.HasPrefix(path, Scheme)
}

// ParseURI splits "az://container/blob/path". The blob part may be empty.
func ParseURI(uri string) (Location, error) {
	if !IsURI(uri) {
		return Location{}, fmt.Errorf("not an Azure URI: %q", uri)
	}
	rest := strings.TrimPrefix(uri, Scheme)
	if rest == "" {
		return Location{}, fmt.Errorf("empty Azure URI")
	}
	container, blob, _ := strings.Cut(rest, "/")
	if container == "" {
		return Location{}, fmt.Errorf("empty container name in URI %q", uri)
	}
	return Location{Container: container, Blob: blob}, nil
}

// ClientOptions selects the storage account and credentials.
type ClientOptions struct {
	AccountName      string
	ConnectionString string
}

// NewClient builds a blob client from opts.
func NewClient(opts ClientOptions) (*azblob.Client, error) {
	if opts.ConnectionString != "" {
		client, err := azblob.NewClientFromConnectionString(opts.ConnectionString, nil)
		if err != nil {
			return nil, fmt.Errorf("azure connection string: %w", err)
		}
		return client, nil
	}
	if opts.AccountName == "" {
		return nil, fmt.Errorf("AZURE_STORAGE_ACCOUNT (or --azure-account) is required when not using a connection string")
	}

	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("azure default credential: %w", err)
	}
	serviceURL := fmt.Sprintf("https://%s.blob.core.windows.net/", opts.AccountName)
	client, err := azblob.NewClient(serviceURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("azure client: %w", err)
	}
	return client, nil
}

// Download returns the content of the blob at loc.
func Download(ctx context.Context, client *azblob.Client, loc Location) ([]byte, error) {
	if loc.Blob == "" {
		return nil, fmt.Errorf("azure download %s: no blob path", loc)
	}
	resp, err := client.DownloadStream(ctx, loc.Container, loc.Blob, nil)
	if err != nil {
		return nil, fmt.Errorf("azure download %s: %w", loc, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("azure read stream %s: %w", loc, err)
	}
	return data, nil
}

// Upload writes data to the blob at loc, replacing it.
func Upload(ctx context.Context, client *azblob.Client, loc Location, data []byte) error {
	if loc.Blob == "" {
		return fmt.Errorf("azure upload %s: no blob path", loc)
	}
	if _, err := client.UploadStream(ctx, loc.Container, loc.Blob, bytes.NewReader(data), nil); err != nil {
		return fmt.Errorf("azure upload %s: %w", loc, err)
	}
	return nil
}
