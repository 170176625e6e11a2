package main

import (
	"context"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"

	"github.com/Decentr-net/resume/internal/storage"
	"github.com/Decentr-net/resume/internal/storage/s3"
)

type S3Opts struct {
	S3Endpoint        string `long:"s3.endpoint" env:"S3_ENDPOINT" description:"s3 endpoint, avatars rendering is disabled when empty"`
	S3Region          string `long:"s3.region" env:"S3_REGION" default:"" description:"s3 region"`
	S3AccessKeyID     string `long:"s3.access-key-id" env:"S3_ACCESS_KEY_ID" description:"access key id for S3 storage"`
	S3SecretAccessKey string `long:"s3.secret-access-key" env:"S3_SECRET_ACCESS_KEY" description:"secret access key for S3 storage"`
	S3UseSSL          bool   `long:"s3.use-ssl" env:"S3_USE_SSL" description:"use ssl for S3 storage connection"`
	S3Bucket          string `long:"s3.bucket" env:"S3_BUCKET" default:"resume" description:"S3 bucket for rendered avatars"`
}

func mustGetFileStorage() storage.FileStorage {
	if opts.S3Endpoint == "" {
		logrus.Warn("empty s3 endpoint, skip file storage initialization")
		return nil
	}

	s3client, err := minio.New(opts.S3Endpoint, &minio.Options{
		Region: opts.S3Region,
		Creds:  credentials.NewStaticV4(opts.S3AccessKeyID, opts.S3SecretAccessKey, ""),
		Secure: opts.S3UseSSL,
	})
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to S3 storage")
	}

	fs, err := s3.NewStorage(context.Background(), s3client, opts.S3Bucket)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create storage")
	}

	return fs
}
