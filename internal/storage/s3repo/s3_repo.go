package s3repo

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"arithma_tech/config"
	"arithma_tech/entity"
)

const traceName = "S3-Repo"

type S3Repository struct {
	sess *s3.Client
}

var _ entity.StorageRepository = (*S3Repository)(nil)

// NewS3Repository targets the S3 compatible endpoint in cfg. Static credentials are used when
// an access key is configured, the default AWS credential chain otherwise.
func NewS3Repository(ctx context.Context, cfg config.S3) (*S3Repository, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 bucket is not configured")
	}

	var awsCfg aws.Config
	if cfg.AccessKey != "" {
		awsCfg = aws.Config{
			Region:      cfg.Region,
			Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		}
	} else {
		var err error
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
		if err != nil {
			return nil, errors.Wrap(err, "load aws config")
		}
	}

	if cfg.Endpoint != "" {
		resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...any) (aws.Endpoint, error) {
			return aws.Endpoint{
				PartitionID:       "aws",
				SigningRegion:     cfg.Region,
				URL:               cfg.Endpoint,
				HostnameImmutable: true,
			}, nil
		})
		awsCfg.EndpointResolverWithOptions = resolver
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})
	return &S3Repository{s3Client}, nil
}

func (s3Repo *S3Repository) UploadObject(ctx context.Context, bucket string, key string, r io.Reader) error {
	ctx, span := otel.Tracer(traceName).Start(ctx, "UploadObject")
	defer span.End()

	span.SetAttributes(attribute.String("bucket", bucket))
	span.SetAttributes(attribute.String("key", key))

	uploader := manager.NewUploader(s3Repo.sess)

	_, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String("application/octet-stream"),
	})
	if err != nil {
		span.RecordError(err)
		return errors.Wrap(err, "s3 upload")
	}

	return nil
}
