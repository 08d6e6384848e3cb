package config

import (
	"os"
	"path/filepath"
	"sort"
)

type Config struct {
	APIAddr            string
	OpenAIAPIKey       string
	PineconeAPIKey     string
	PineconeEnv        string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSRegion          string
	S3Bucket           string
	S3Key              string
	DatasetPath        string
	TablePath          string
	IndexName          string
	EmbedDim           int
	CachePath          string
	Username           string
}

// requiredVars must be present in the environment before either binary starts.
var requiredVars = []string{
	"AWS_ACCESS_KEY_ID",
	"AWS_SECRET_ACCESS_KEY",
	"OPENAI_API_KEY",
	"PINECONE_API_KEY",
	"PINECONE_ENV",
}

func Load() Config {
	tempDir := getenv("TEMP", os.TempDir())
	return Config{
		APIAddr:            getenv("MEDIRAG_API_ADDR", ":8000"),
		OpenAIAPIKey:       os.Getenv("OPENAI_API_KEY"),
		PineconeAPIKey:     os.Getenv("PINECONE_API_KEY"),
		PineconeEnv:        os.Getenv("PINECONE_ENV"),
		AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		AWSRegion:          getenv("AWS_REGION", "ap-northeast-2"),
		S3Bucket:           getenv("MEDIRAG_S3_BUCKET", "medical-rag-test"),
		S3Key:              getenv("MEDIRAG_S3_KEY", "medical-rag-test.csv"),
		DatasetPath:        getenv("MEDIRAG_DATASET_PATH", filepath.Join(tempDir, "medical_data.csv")),
		TablePath:          getenv("MEDIRAG_TABLE_PATH", "Profile_refine_4_241217.xlsx"),
		IndexName:          getenv("MEDIRAG_INDEX_NAME", "medical-reviews"),
		EmbedDim:           1536,
		CachePath:          getenv("MEDIRAG_CACHE_PATH", "embeddings_cache.json"),
		Username:           getenv("USERNAME", "default_user"),
	}
}

// MissingRequired reports which required environment variables are unset,
// sorted, so startup can abort with the full list instead of the first hit.
func MissingRequired() []string {
	var missing []string
	for _, v := range requiredVars {
		if os.Getenv(v) == "" {
			missing = append(missing, v)
		}
	}
	sort.Strings(missing)
	return missing
}

func getenv(k, fallback string) string {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	return v
}
