// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to provide a simplified interface for the operations
// the asset janitor needs: checking the bucket, uploading objects, listing folders
// and bulk removal. This abstraction supports both AWS S3 and self-hosted MinIO.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (see core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the target bucket.
//   - MakeBucket: Creates the bucket when the structure check is run with --fix.
//   - PutObject: Uploads content (with size and content type).
//   - ListObjects: Lists objects in a bucket (supports prefix/recursive).
//   - RemoveObjects: Deletes a batch of objects in a single call.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "assets")
package storage
