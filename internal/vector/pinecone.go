package vector

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/pinecone-io/go-pinecone/v2/pinecone"
	"google.golang.org/protobuf/types/known/structpb"
)

// Serverless indexes are created in a fixed region; PINECONE_ENV is validated
// at startup but does not steer placement.
const serverlessRegion = "us-east-1"

// PineconeIndex wraps one serverless Pinecone index and implements Index.
type PineconeIndex struct {
	client *pinecone.Client
	conn   *pinecone.IndexConnection

	name      string
	dimension int32
	metric    pinecone.IndexMetric
}

type PineconeConfig struct {
	APIKey    string
	IndexName string
	Dimension int
}

func NewPineconeIndex(cfg PineconeConfig) (*PineconeIndex, error) {
	client, err := pinecone.NewClient(pinecone.NewClientParams{ApiKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("create pinecone client: %w", err)
	}
	return &PineconeIndex{
		client:    client,
		name:      cfg.IndexName,
		dimension: int32(cfg.Dimension),
		metric:    pinecone.Cosine,
	}, nil
}

// Ensure makes the named index usable: it creates the serverless index when
// absent and fails fast when an existing index does not match the expected
// dimension or metric, so a misconfigured index surfaces at startup rather
// than as silently broken upserts later.
func (p *PineconeIndex) Ensure(ctx context.Context) error {
	idx, err := p.client.DescribeIndex(ctx, p.name)
	if err != nil {
		if !isNotFound(err) {
			return fmt.Errorf("describe index %s: %w", p.name, err)
		}
		log.Printf("vector: creating index %q in region %s", p.name, serverlessRegion)
		idx, err = p.client.CreateServerlessIndex(ctx, &pinecone.CreateServerlessIndexRequest{
			Name:      p.name,
			Dimension: p.dimension,
			Metric:    p.metric,
			Cloud:     pinecone.Aws,
			Region:    serverlessRegion,
		})
		if err != nil {
			return fmt.Errorf("create index %s: %w", p.name, err)
		}
	} else if err := checkIndexSpec(idx, p.dimension, p.metric); err != nil {
		return err
	}

	conn, err := p.client.Index(pinecone.NewIndexConnParams{Host: idx.Host})
	if err != nil {
		return fmt.Errorf("connect to index %s: %w", p.name, err)
	}
	p.conn = conn
	return nil
}

// checkIndexSpec guards against reusing an index whose shape does not match
// what the embedder produces.
func checkIndexSpec(idx *pinecone.Index, dimension int32, metric pinecone.IndexMetric) error {
	if idx.Dimension != dimension || idx.Metric != metric {
		return fmt.Errorf("index %s exists with dimension=%d metric=%s, expected dimension=%d metric=%s",
			idx.Name, idx.Dimension, idx.Metric, dimension, metric)
	}
	return nil
}

func (p *PineconeIndex) Upsert(ctx context.Context, id string, values []float32, metadata map[string]any) error {
	md, err := structpb.NewStruct(metadata)
	if err != nil {
		return fmt.Errorf("build metadata for %s: %w", id, err)
	}
	_, err = p.conn.UpsertVectors(ctx, []*pinecone.Vector{{
		Id:       id,
		Values:   values,
		Metadata: md,
	}})
	if err != nil {
		return fmt.Errorf("upsert %s: %w", id, err)
	}
	return nil
}

func (p *PineconeIndex) Query(ctx context.Context, values []float32, topK int) ([]map[string]any, error) {
	res, err := p.conn.QueryByVectorValues(ctx, &pinecone.QueryByVectorValuesRequest{
		Vector:          values,
		TopK:            uint32(topK),
		IncludeMetadata: true,
	})
	if err != nil {
		return nil, fmt.Errorf("query index %s: %w", p.name, err)
	}
	out := make([]map[string]any, 0, len(res.Matches))
	for _, m := range res.Matches {
		if m.Vector == nil || m.Vector.Metadata == nil {
			continue
		}
		out = append(out, m.Vector.Metadata.AsMap())
	}
	return out, nil
}

func isNotFound(err error) bool {
	e := strings.ToLower(err.Error())
	return strings.Contains(e, "404") || strings.Contains(e, "not found")
}
