package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"
)

// EmbeddingCache persists embeddings keyed by model and text.
type EmbeddingCache interface {
	InitCollection(ctx context.Context) error
	Get(ctx context.Context, model, text string) ([]float32, bool, error)
	Put(ctx context.Context, model, text string, vector []float32) error
	Close() error
}

// QdrantConfig locates the cache collection.
type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
	VectorSize uint64
}

// pointStore is the subset of *qdrant.Client used by the cache.
type pointStore interface {
	CollectionExists(ctx context.Context, collectionName string) (bool, error)
	CreateCollection(ctx context.Context, request *qdrant.CreateCollection) error
	Get(ctx context.Context, request *qdrant.GetPoints) ([]*qdrant.RetrievedPoint, error)
	Upsert(ctx context.Context, request *qdrant.UpsertPoints) (*qdrant.UpdateResult, error)
	Close() error
}

// cacheNamespace seeds the deterministic point IDs.
var cacheNamespace = uuid.MustParse("6f1c7a52-3d0e-4f7b-9a51-2c8e4d9b7a10")

type qdrantService struct {
	client         pointStore
	collectionName string
	vectorSize     uint64
	logger         *zap.Logger
}

func NewQdrantService(cfg QdrantConfig, logger *zap.Logger) (EmbeddingCache, error) {
	// Parse URL to extract host, port, and TLS usage
	parsed, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}
	if parsed.Hostname() == "" {
		return nil, fmt.Errorf("invalid Qdrant URL %q: missing host", cfg.URL)
	}

	// gRPC port
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   parsed.Hostname(),
		Port:   port,
		APIKey: cfg.APIKey,
		UseTLS: parsed.Scheme == "https",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return newQdrantService(client, cfg, logger), nil
}

func newQdrantService(client pointStore, cfg QdrantConfig, logger *zap.Logger) *qdrantService {
	if cfg.Collection == "" {
		cfg.Collection = "cv_matcher_embeddings"
	}
	if cfg.VectorSize == 0 {
		cfg.VectorSize = 768
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &qdrantService{
		client:         client,
		collectionName: cfg.Collection,
		vectorSize:     cfg.VectorSize,
		logger:         logger,
	}
}

// InitCollection implements EmbeddingCache.
func (q *qdrantService) InitCollection(ctx context.Context) error {
	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		q.logger.Debug("qdrant collection already exists", zap.String("collection", q.collectionName))
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	q.logger.Info("qdrant collection created",
		zap.String("collection", q.collectionName),
		zap.Uint64("vector_size", q.vectorSize),
	)
	return nil
}

// Get implements EmbeddingCache. A miss is reported with ok=false and no error.
func (q *qdrantService) Get(ctx context.Context, model, text string) ([]float32, bool, error) {
	points, err := q.client.Get(ctx, &qdrant.GetPoints{
		CollectionName: q.collectionName,
		Ids:            []*qdrant.PointId{qdrant.NewIDUUID(pointID(model, text))},
		WithVectors:    qdrant.NewWithVectors(true),
		WithPayload:    qdrant.NewWithPayload(false),
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to get cached embedding: %w", err)
	}
	if len(points) == 0 {
		return nil, false, nil
	}

	vec := points[0].GetVectors().GetVector()
	data := vec.GetDense().GetData()
	if len(data) == 0 {
		data = vec.GetData()
	}
	if len(data) == 0 {
		return nil, false, nil
	}

	return data, true, nil
}

// Put implements EmbeddingCache.
func (q *qdrantService) Put(ctx context.Context, model, text string, vector []float32) error {
	if uint64(len(vector)) != q.vectorSize {
		return fmt.Errorf("embedding has %d dimensions, collection expects %d", len(vector), q.vectorSize)
	}

	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDUUID(pointID(model, text)),
		Vectors: qdrant.NewVectors(vector...),
		Payload: qdrant.NewValueMap(map[string]any{
			"model": model,
			"text":  text,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

func (q *qdrantService) Close() error {
	return q.client.Close()
}

func pointID(model, text string) string {
	return uuid.NewSHA1(cacheNamespace, []byte(model+"\x00"+text)).String()
}
