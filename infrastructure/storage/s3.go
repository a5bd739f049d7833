package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
)

// Uploader grava arquivos de relatório e devolve a URL de acesso
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body []byte) (string, error)
}

type S3Config struct {
	Bucket       string
	Region       string
	Endpoint     string
	UsePathStyle bool
	// PublicURL substitui a URL padrão do bucket quando há CDN ou proxy na frente
	PublicURL string
}

type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Uploader struct {
	client putObjectAPI
	cfg    S3Config
}

func NewS3Uploader(ctx context.Context, cfg S3Config) (*S3Uploader, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("bucket de relatórios não configurado")
	}

	var opts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar configuração AWS: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}
	if cfg.UsePathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}

	return newS3Uploader(s3.NewFromConfig(awsCfg, s3Opts...), cfg), nil
}

func newS3Uploader(client putObjectAPI, cfg S3Config) *S3Uploader {
	return &S3Uploader{client: client, cfg: cfg}
}

func (u *S3Uploader) Upload(ctx context.Context, key, contentType string, body []byte) (string, error) {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("erro ao enviar relatório para o S3: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"bucket": u.cfg.Bucket,
		"key":    key,
		"bytes":  len(body),
	}).Info("Relatório enviado para o S3")

	return u.ObjectURL(key), nil
}

func (u *S3Uploader) ObjectURL(key string) string {
	if u.cfg.PublicURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(u.cfg.PublicURL, "/"), key)
	}

	if u.cfg.Endpoint != "" {
		endpoint := strings.TrimRight(u.cfg.Endpoint, "/")
		if u.cfg.UsePathStyle {
			return fmt.Sprintf("%s/%s/%s", endpoint, u.cfg.Bucket, key)
		}
		scheme, host, found := strings.Cut(endpoint, "://")
		if !found {
			return fmt.Sprintf("%s.%s/%s", u.cfg.Bucket, endpoint, key)
		}
		return fmt.Sprintf("%s://%s.%s/%s", scheme, u.cfg.Bucket, host, key)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.cfg.Bucket, u.cfg.Region, key)
}
