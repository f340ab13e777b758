// Package storage arquiva cópias dos relatórios exportados em um bucket
// R2/S3. O download do cliente nunca depende do arquivamento.
package storage

import "context"

type Archiver interface {
	ArchiveReport(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// NoopArchiver é usado quando o R2 não está configurado.
type NoopArchiver struct{}

func (NoopArchiver) ArchiveReport(ctx context.Context, key, contentType string, data []byte) (string, error) {
	return "", nil
}
