package mongodb

import (
	"bytes"
	"context"

	"github.com/qonnected/qonnected-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProofStore implements repositories.ProofStore on a GridFS bucket in the
// same database as the payment records.
type ProofStore struct {
	bucket *gridfs.Bucket
}

// NewProofStore creates a new ProofStore
func NewProofStore(db *mongo.Database) (repositories.ProofStore, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName("proofs"))
	if err != nil {
		return nil, err
	}
	return &ProofStore{bucket: bucket}, nil
}

// Save stores a proof image and returns its file ID
func (s *ProofStore) Save(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	opts := options.GridFSUpload().SetMetadata(bson.M{"contentType": contentType})
	id, err := s.bucket.UploadFromStream(filename, bytes.NewReader(data), opts)
	if err != nil {
		return "", err
	}
	return id.Hex(), nil
}

// Open reads a proof image back by file ID, returning the bytes and the
// content type recorded at upload time.
func (s *ProofStore) Open(ctx context.Context, fileID string) ([]byte, string, error) {
	id, err := primitive.ObjectIDFromHex(fileID)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	if _, err := s.bucket.DownloadToStream(id, &buf); err != nil {
		return nil, "", err
	}

	contentType := "application/octet-stream"
	cursor, err := s.bucket.Find(bson.M{"_id": id})
	if err == nil {
		defer cursor.Close(ctx)
		if cursor.Next(ctx) {
			var file struct {
				Metadata struct {
					ContentType string `bson:"contentType"`
				} `bson:"metadata"`
			}
			if err := cursor.Decode(&file); err == nil && file.Metadata.ContentType != "" {
				contentType = file.Metadata.ContentType
			}
		}
	}
	return buf.Bytes(), contentType, nil
}
