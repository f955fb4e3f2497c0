package blob

import (
	"context"
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"adflow.app/tracker/common/id"
	"adflow.app/tracker/core/config"
)

var (
	ErrUnsupportedContentType = errors.New("unsupported content type")
	ErrUnsupportedKind        = errors.New("unsupported upload kind")
)

type Kind string

const (
	KindCreative Kind = "creative"
	KindTemplate Kind = "template"
	KindLogo     Kind = "logo"
)

var allowedContentTypes = map[string]string{
	"image/png":     ".png",
	"image/jpeg":    ".jpg",
	"image/webp":    ".webp",
	"image/gif":     ".gif",
	"image/svg+xml": ".svg",
	"video/mp4":     ".mp4",
	"video/webm":    ".webm",
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

type UploadRequest struct {
	OrganizationID int64
	Kind           Kind
	Filename       string
	ContentType    string
}

// UploadTicket is handed to the client, which PUTs the file to UploadURL and
// later submits ObjectURL as the creative or asset URL.
type UploadTicket struct {
	Key       string    `json:"key"`
	UploadURL string    `json:"upload_url"`
	ObjectURL string    `json:"object_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Signer issues presigned PUT URLs. The tracker never proxies file bytes.
type Signer interface {
	SignUpload(ctx context.Context, req UploadRequest) (*UploadTicket, error)
}

type s3Signer struct {
	svc    *s3.S3
	cfg    config.BlobConfig
	expiry time.Duration
}

func NewS3Signer(cfg config.BlobConfig) (Signer, error) {
	awsCfg := &aws.Config{
		Region: aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("creating aws session: %w", err)
	}

	expiry := cfg.UploadURLTTL
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}

	return &s3Signer{svc: s3.New(sess), cfg: cfg, expiry: expiry}, nil
}

func (s *s3Signer) SignUpload(ctx context.Context, req UploadRequest) (*UploadTicket, error) {
	key, err := ObjectKey(req)
	if err != nil {
		return nil, err
	}

	putReq, _ := s.svc.PutObjectRequest(&s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(req.ContentType),
	})
	putReq.SetContext(ctx)

	uploadURL, err := putReq.Presign(s.expiry)
	if err != nil {
		return nil, fmt.Errorf("presigning upload url: %w", err)
	}

	return &UploadTicket{
		Key:       key,
		UploadURL: uploadURL,
		ObjectURL: s.objectURL(key),
		ExpiresAt: time.Now().Add(s.expiry).UTC(),
	}, nil
}

func (s *s3Signer) objectURL(key string) string {
	switch {
	case s.cfg.PublicBaseURL != "":
		return strings.TrimRight(s.cfg.PublicBaseURL, "/") + "/" + key
	case s.cfg.Endpoint != "":
		return strings.TrimRight(s.cfg.Endpoint, "/") + "/" + s.cfg.Bucket + "/" + key
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
	}
}

// ObjectKey builds "orgs/<org>/<kind>s/<id>-<name><ext>". The extension always
// follows the declared content type.
func ObjectKey(req UploadRequest) (string, error) {
	switch req.Kind {
	case KindCreative, KindTemplate, KindLogo:
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedKind, req.Kind)
	}

	ext, ok := allowedContentTypes[strings.ToLower(req.ContentType)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedContentType, req.ContentType)
	}

	base := strings.TrimSuffix(path.Base(req.Filename), path.Ext(req.Filename))
	base = strings.Trim(unsafeFilenameChars.ReplaceAllString(base, "-"), "-.")
	if base == "" {
		base = "file"
	}
	if len(base) > 80 {
		base = base[:80]
	}

	return fmt.Sprintf("orgs/%d/%ss/%d-%s%s", req.OrganizationID, req.Kind, id.New(), strings.ToLower(base), ext), nil
}
