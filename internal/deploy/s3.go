package deploy

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront"
	cftypes "github.com/aws/aws-sdk-go-v2/service/cloudfront/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/jbrahy/ebay-catalog/internal/config"
	"github.com/jbrahy/ebay-catalog/internal/domain"
)

// Narrow views of the AWS clients, wide enough for the sync and nothing more.
type objectStore interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	DeleteObjects(ctx context.Context, in *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
}

type cdnInvalidator interface {
	CreateInvalidation(ctx context.Context, in *cloudfront.CreateInvalidationInput, optFns ...func(*cloudfront.Options)) (*cloudfront.CreateInvalidationOutput, error)
}

// S3Deployer mirrors the output tree into a bucket: upload everything, delete
// remote objects no longer present locally, then invalidate the CDN.
type S3Deployer struct {
	bucket       string
	region       string
	distribution string
	store        objectStore
	cdn          cdnInvalidator
	logger       *log.Logger
}

var _ domain.Deployer = (*S3Deployer)(nil)

func NewS3(cfg config.Deploy, logger *log.Logger) *S3Deployer {
	return &S3Deployer{
		bucket:       cfg.S3Bucket,
		region:       cfg.S3Region,
		distribution: cfg.CloudFrontDistributionID,
		logger:       logger,
	}
}

// Deploy uploads dir to the bucket. Credentials come from the default AWS
// chain (environment, shared config, instance role).
func (d *S3Deployer) Deploy(ctx context.Context, dir string) error {
	if d.store == nil {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(d.region))
		if err != nil {
			return fmt.Errorf("%w: loading AWS config: %v", domain.ErrDeploy, err)
		}
		d.store = s3.NewFromConfig(awsCfg)
		d.cdn = cloudfront.NewFromConfig(awsCfg)
	}

	uploaded, err := d.uploadTree(ctx, dir)
	if err != nil {
		return err
	}
	if err := d.deleteOrphans(ctx, uploaded); err != nil {
		return err
	}
	if d.distribution != "" {
		if err := d.invalidate(ctx); err != nil {
			return err
		}
	}

	d.logger.Info("deployed to S3", "bucket", d.bucket, "objects", len(uploaded))
	return nil
}

func (d *S3Deployer) uploadTree(ctx context.Context, dir string) (map[string]bool, error) {
	uploaded := map[string]bool{}
	err := filepath.WalkDir(dir, func(path string, entry os.DirEntry, err error) error {
		if err != nil || entry.IsDir() {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		_, err = d.store.PutObject(ctx, &s3.PutObjectInput{
			Bucket:       aws.String(d.bucket),
			Key:          aws.String(key),
			Body:         f,
			ContentType:  aws.String(contentType(key)),
			CacheControl: aws.String(cacheControl(key)),
		})
		if err != nil {
			return fmt.Errorf("uploading %s: %w", key, err)
		}
		uploaded[key] = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDeploy, err)
	}
	return uploaded, nil
}

// deleteOrphans removes bucket objects that the current tree no longer
// contains, so the bucket mirrors the output exactly.
func (d *S3Deployer) deleteOrphans(ctx context.Context, keep map[string]bool) error {
	var orphans []s3types.ObjectIdentifier
	var token *string
	for {
		out, err := d.store.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(d.bucket),
			ContinuationToken: token,
		})
		if err != nil {
			return fmt.Errorf("%w: listing bucket: %v", domain.ErrDeploy, err)
		}
		for _, obj := range out.Contents {
			if obj.Key != nil && !keep[*obj.Key] {
				orphans = append(orphans, s3types.ObjectIdentifier{Key: obj.Key})
			}
		}
		if out.IsTruncated == nil || !*out.IsTruncated {
			break
		}
		token = out.NextContinuationToken
	}

	// DeleteObjects caps a batch at 1000 keys.
	for len(orphans) > 0 {
		batch := orphans
		if len(batch) > 1000 {
			batch = batch[:1000]
		}
		orphans = orphans[len(batch):]

		_, err := d.store.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(d.bucket),
			Delete: &s3types.Delete{Objects: batch, Quiet: aws.Bool(true)},
		})
		if err != nil {
			return fmt.Errorf("%w: deleting stale objects: %v", domain.ErrDeploy, err)
		}
		d.logger.Info("removed stale objects", "count", len(batch))
	}
	return nil
}

func (d *S3Deployer) invalidate(ctx context.Context) error {
	_, err := d.cdn.CreateInvalidation(ctx, &cloudfront.CreateInvalidationInput{
		DistributionId: aws.String(d.distribution),
		InvalidationBatch: &cftypes.InvalidationBatch{
			CallerReference: aws.String(uuid.NewString()),
			Paths: &cftypes.Paths{
				Quantity: aws.Int32(1),
				Items:    []string{"/*"},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("%w: CloudFront invalidation: %v", domain.ErrDeploy, err)
	}
	d.logger.Info("invalidated CloudFront distribution", "distribution", d.distribution)
	return nil
}

func contentType(key string) string {
	if ct := mime.TypeByExtension(filepath.Ext(key)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// cacheControl keeps HTML fresh on every rebuild while letting assets cache
// long; asset URLs do not change between builds but their content rarely
// does either.
func cacheControl(key string) string {
	switch strings.ToLower(filepath.Ext(key)) {
	case ".html", ".xml":
		return "max-age=300, public"
	case ".css", ".js", ".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp", ".ico":
		return "max-age=31536000, public"
	default:
		return "max-age=3600, public"
	}
}
