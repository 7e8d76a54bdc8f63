package mongodb

import (
	"bytes"
	"context"
	"io"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"

	"wheeldeal/internal/backend"
)

var _ backend.Files = (*Files)(nil)

// Files stores uploads in GridFS and returns a URL built from the bucket
// file id.
type Files struct {
	db      *mongo.Database
	baseURL string
}

func NewFiles(client *mongo.Client, database, baseURL string) *Files {
	return &Files{db: client.Database(database), baseURL: baseURL}
}

func (f *Files) Upload(ctx context.Context, path string, data []byte) (string, error) {
	bucket, err := gridfs.NewBucket(f.db)
	if err != nil {
		return "", errors.Wrap(err, "mongoFiles.Upload.NewBucket")
	}

	stream, err := bucket.OpenUploadStream(path)
	if err != nil {
		return "", errors.Wrap(err, "mongoFiles.Upload.OpenUploadStream")
	}

	if _, err := io.Copy(stream, bytes.NewReader(data)); err != nil {
		stream.Close()
		return "", errors.Wrap(err, "mongoFiles.Upload.Copy")
	}
	if err := stream.Close(); err != nil {
		return "", errors.Wrap(err, "mongoFiles.Upload.Close")
	}

	fileID := stream.FileID.(primitive.ObjectID).Hex()
	return f.baseURL + "/" + fileID, nil
}
