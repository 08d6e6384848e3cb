package objectstore

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"medirag/internal/config"
)

// Client is a thin pass-through over S3. Failures are logged and returned
// unchanged; the caller decides whether to retry.
type Client struct {
	downloader *manager.Downloader
	uploader   *manager.Uploader
}

func New(ctx context.Context, cfg config.Config) (*Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	api := s3.NewFromConfig(awsCfg)
	return &Client{
		downloader: manager.NewDownloader(api),
		uploader:   manager.NewUploader(api),
	}, nil
}

func (c *Client) Download(ctx context.Context, bucket, key, localPath string) error {
	f, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", localPath, err)
	}
	defer f.Close()

	_, err = c.downloader.Download(ctx, f, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		log.Printf("objectstore: error downloading s3://%s/%s: %v", bucket, key, err)
		return err
	}
	log.Printf("objectstore: downloaded s3://%s/%s to %s", bucket, key, localPath)
	return nil
}

func (c *Client) Upload(ctx context.Context, localPath, bucket, key string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", localPath, err)
	}
	defer f.Close()

	_, err = c.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   f,
	})
	if err != nil {
		log.Printf("objectstore: error uploading %s to s3://%s/%s: %v", localPath, bucket, key, err)
		return err
	}
	log.Printf("objectstore: uploaded %s to s3://%s/%s", localPath, bucket, key)
	return nil
}
