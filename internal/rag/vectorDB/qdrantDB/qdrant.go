package qdrantDB

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/akolanti/CorpusAPI/internal/config"
	"github.com/akolanti/CorpusAPI/internal/domain/docModel"
	"github.com/akolanti/CorpusAPI/pkg/logger_i"
	"github.com/qdrant/go-client/qdrant"
)

var logger *logger_i.Logger
var quadrantInstance *qdrant.Client
var once sync.Once
var dimension = uint64(config.EmbeddingOutputDimensionality)
var collectionName = config.VectorCollectionName

type ClientHolder struct {
	QObj *qdrant.Client
}

func GetQuadrantClient(ctx context.Context, host string, port int, useTLS bool) *ClientHolder {

	once.Do(func() {
		logger = logger_i.NewLogger("Qdrant")
		res := newClient(host, port, useTLS)
		if res != nil {
			quadrantInstance = res
			initCacheCollection(ctx, quadrantInstance)
			go closeQdrant(ctx, quadrantInstance)
		}
	})

	if quadrantInstance == nil {
		return nil
	}
	return &ClientHolder{
		QObj: quadrantInstance,
	}
}

func newClient(host string, port int, useTLS bool) *qdrant.Client {

	//env wins over the settings file, constants are last resort
	if envHost := os.Getenv("QDRANT_HOST"); envHost != "" {
		if envPort, er := strconv.Atoi(os.Getenv("QDRANT_PORT")); er == nil {
			host = envHost
			port = envPort
		}
	}
	if host == "" {
		host = config.QdrantHost
	}
	if port == 0 {
		port = config.QdrantGrpcPort
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:     host,
		Port:     port,
		UseTLS:   useTLS,
		PoolSize: uint(config.QdrantPoolSize),
	})
	if err != nil {
		logger.Error("could not instantiate: ", "error:", err)
	}

	err = createCollection(context.Background(), client, config.VectorCollectionName)
	if err != nil {
		logger.Error("could not create collection: ", "collectionName", config.VectorCollectionName, "error:", err)
		return nil
	}

	return client
}

func closeQdrant(ctx context.Context, qi *qdrant.Client) {
	<-ctx.Done()
	logger.Info("Shutting down Qdrant")
	err := qi.Close()
	if err != nil {
		logger.Error("could not close Qdrant: ", "error:", err)
	}
	logger.Info("Closed Qdrant")
}

func (db *ClientHolder) Search(ctx context.Context, vectorFloat []float32, topK uint64) ([]docModel.RetrievalResult, error) {
	loggr := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))
	result, err := db.QObj.Query(ctx, &qdrant.QueryPoints{
		CollectionName: collectionName, //TODO:with access control this collection should be dynamic ie parameterized
		Query:          qdrant.NewQuery(vectorFloat...),
		Limit:          qdrant.PtrOf(topK),
		WithPayload:    qdrant.NewWithPayload(true),
	})

	if err != nil {
		loggr.Error("Error querying Qdrant: ", "error:", err)
		return nil, err
	}

	var matches []docModel.RetrievalResult
	for i, hit := range result {
		chunk := docModel.Chunk{
			Text:    hit.Payload["content"].GetStringValue(),
			ChunkID: hit.Payload["chunk_id"].GetStringValue(),
			DocID:   hit.Payload["doc_id"].GetStringValue(),
			Metadata: docModel.Metadata{
				Source:   hit.Payload["source"].GetStringValue(),
				FileType: hit.Payload["file_type"].GetStringValue(),
				FileHash: hit.Payload["file_hash"].GetStringValue(),
			},
			ChunkIndex:  int(hit.Payload["chunk_index"].GetIntegerValue()),
			TotalChunks: int(hit.Payload["total_chunks"].GetIntegerValue()),
		}
		matches = append(matches, docModel.RetrievalResult{
			Chunk: chunk,
			Score: hit.Score,
			Rank:  i + 1,
		})
	}

	loggr.Debug("Found matches", "count", len(matches))
	return matches, nil
}

func (db *ClientHolder) CreateCollection(ctx context.Context, collectionName string) error {
	return createCollection(ctx, db.QObj, collectionName)
}

func (db *ClientHolder) UpsertBatch(ctx context.Context, collectionName string, chunks []docModel.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("mismatch: got %d chunks but %d vectors", len(chunks), len(vectors))
	}

	qdrantPoints := make([]*qdrant.PointStruct, len(chunks))

	for i, chunk := range chunks {
		qdrantPoints[i] = &qdrant.PointStruct{
			Id: qdrant.NewID(chunk.ChunkID),

			Vectors: qdrant.NewVectors(vectors[i]...),

			Payload: qdrant.NewValueMap(map[string]any{
				"content":      chunk.Text,
				"chunk_id":     chunk.ChunkID,
				"doc_id":       chunk.DocID,
				"chunk_index":  chunk.ChunkIndex,
				"total_chunks": chunk.TotalChunks,
				"source":       chunk.Metadata.Source,
				"file_type":    chunk.Metadata.FileType,
				"file_hash":    chunk.Metadata.FileHash,
				"ingested_at":  chunk.Metadata.ProcessedTime.Unix(),
			}),
		}
	}

	_, err := db.QObj.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collectionName,
		Points:         qdrantPoints,
		Wait:           qdrant.PtrOf(true),
	})

	if err != nil {
		return fmt.Errorf("qdrant upsert failed: %w", err)
	}

	return nil

}

func createCollection(ctx context.Context, client *qdrant.Client, collectionName string) error {
	if collectionName == "" {
		return errors.New("empty collection name")
	}

	exists, err := client.CollectionExists(ctx, collectionName)
	if err != nil {
		return err
	}
	if exists {

		return nil
	}

	err = client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     dimension,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	return err
}
