package utils

import (
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

var (
	driveFilePatterns = []*regexp.Regexp{
		regexp.MustCompile(`/file/d/([a-zA-Z0-9_-]+)`),
		regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9_-]+)`),
		regexp.MustCompile(`[?&]id=([a-zA-Z0-9_-]+)`),
	}
	driveHostPattern = regexp.MustCompile(`^https?://(drive|docs)\.google\.com/`)
)

const spreadsheetMimeType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DriveDownloader fetches import files shared through Google Drive with a
// service account. The Drive client is created on first use.
type DriveDownloader struct {
	credentialsPath string
	credentialsJSON string
	logger          *zap.Logger

	once    sync.Once
	service *drive.Service
	initErr error
}

func NewDriveDownloader(credentialsPath, credentialsJSON string, logger *zap.Logger) *DriveDownloader {
	return &DriveDownloader{
		credentialsPath: credentialsPath,
		credentialsJSON: credentialsJSON,
		logger:          logger,
	}
}

func (d *DriveDownloader) init(ctx context.Context) error {
	d.once.Do(func() {
		credentials := []byte(d.credentialsJSON)
		if d.credentialsPath != "" {
			data, err := os.ReadFile(d.credentialsPath)
			if err != nil {
				d.initErr = fmt.Errorf("cannot read Google Drive credentials: %w", err)
				return
			}
			credentials = data
		}
		if len(credentials) == 0 {
			d.initErr = fmt.Errorf("google_drive.credentials_path or google_drive.credentials_json must be set")
			return
		}

		creds, err := google.CredentialsFromJSON(ctx, credentials, drive.DriveReadonlyScope)
		if err != nil {
			d.initErr = fmt.Errorf("cannot load Google Drive credentials: %w", err)
			return
		}
		d.service, err = drive.NewService(ctx, option.WithCredentials(creds))
		if err != nil {
			d.initErr = fmt.Errorf("cannot create Google Drive client: %w", err)
			return
		}
		d.logger.Info("Google Drive client ready")
	})
	return d.initErr
}

// Download returns the content and name of the Drive file behind url.
// Native Google Sheets are exported as .xlsx.
func (d *DriveDownloader) Download(ctx context.Context, url string) (io.ReadCloser, string, error) {
	fileID, err := ExtractFileIDFromURL(url)
	if err != nil {
		return nil, "", err
	}
	if err := d.init(ctx); err != nil {
		return nil, "", err
	}

	file, err := d.service.Files.Get(fileID).Fields("id", "name", "mimeType", "size").Context(ctx).Do()
	if err != nil {
		return nil, "", fmt.Errorf("cannot read Drive file metadata: %w", err)
	}
	d.logger.Info("Downloading Drive file",
		zap.String("name", file.Name),
		zap.String("mimeType", file.MimeType),
		zap.Int64("size", file.Size))

	switch file.MimeType {
	case "application/vnd.google-apps.folder":
		return nil, "", fmt.Errorf("drive folders cannot be imported")
	case "application/vnd.google-apps.spreadsheet":
		resp, err := d.service.Files.Export(fileID, spreadsheetMimeType).Context(ctx).Download()
		if err != nil {
			return nil, "", fmt.Errorf("cannot export Drive spreadsheet: %w", err)
		}
		return resp.Body, file.Name + ".xlsx", nil
	}

	resp, err := d.service.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, "", fmt.Errorf("cannot download Drive file: %w", err)
	}
	return resp.Body, file.Name, nil
}

// ExtractFileIDFromURL returns the file id of a Google Drive or Sheets link.
func ExtractFileIDFromURL(url string) (string, error) {
	for _, re := range driveFilePatterns {
		if m := re.FindStringSubmatch(url); len(m) > 1 {
			return m[1], nil
		}
	}
	return "", fmt.Errorf("no Drive file id in %q", url)
}

// IsGoogleDriveURL reports whether url points at Google Drive or Docs.
func IsGoogleDriveURL(url string) bool {
	return driveHostPattern.MatchString(url)
}
