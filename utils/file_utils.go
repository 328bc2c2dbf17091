// utils/file_utils.go
package utils

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	// Base directory for storing uploaded files
	uploadBaseDir = "uploads"
	// Maximum upload size (10MB)
	maxFileSize = 10 * 1024 * 1024
)

var (
	// Allowed resume extensions
	allowedResumeExts = map[string]bool{
		".pdf":  true,
		".doc":  true,
		".docx": true,
	}
	// Allowed logo extensions
	allowedImageExts = map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".gif":  true,
	}
)

// SaveResumeFile stores an uploaded resume under uploads/resumes and
// returns its relative path.
func SaveResumeFile(file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedResumeExts[ext] {
		return "", fmt.Errorf("invalid resume file type: %s", ext)
	}
	if file.Size > maxFileSize {
		return "", fmt.Errorf("file too large")
	}

	filename := uuid.New().String() + ext
	return saveMultipartFile(file, filepath.Join("resumes"), filename)
}

// SaveCompanyLogo stores an uploaded logo under uploads/logos and writes
// a 320px-wide JPEG thumbnail next to it. Returns the logo path and the
// thumbnail path.
func SaveCompanyLogo(file *multipart.FileHeader) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return "", "", fmt.Errorf("invalid logo file type: %s", ext)
	}
	if file.Size > maxFileSize {
		return "", "", fmt.Errorf("file too large")
	}

	name := uuid.New().String()
	logoPath, err := saveMultipartFile(file, filepath.Join("logos"), name+ext)
	if err != nil {
		return "", "", err
	}

	thumbPath, err := writeLogoThumbnail(logoPath, name)
	if err != nil {
		// Thumbnail is best-effort; the logo itself is saved
		return logoPath, "", nil
	}
	return logoPath, thumbPath, nil
}

// saveMultipartFile copies an uploaded file into uploads/<subDir>/<filename>
// and returns the relative path.
func saveMultipartFile(file *multipart.FileHeader, subDir, filename string) (string, error) {
	dir := filepath.Join(uploadBaseDir, subDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %v", dir, err)
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	fullPath := filepath.Join(dir, filename)
	dst, err := os.Create(fullPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return fullPath, nil
}

// writeLogoThumbnail resizes a saved logo to 320px width and stores it
// as a JPEG under uploads/logos/thumbs.
func writeLogoThumbnail(logoPath, name string) (string, error) {
	data, err := os.ReadFile(logoPath)
	if err != nil {
		return "", err
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode logo: %v", err)
	}

	// Resize to max width of 320px while maintaining aspect ratio
	resized := imaging.Resize(img, 320, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: 85}); err != nil {
		return "", fmt.Errorf("failed to encode thumbnail: %v", err)
	}

	thumbDir := filepath.Join(uploadBaseDir, "logos", "thumbs")
	if err := os.MkdirAll(thumbDir, 0755); err != nil {
		return "", err
	}

	thumbPath := filepath.Join(thumbDir, name+".jpg")
	if err := os.WriteFile(thumbPath, buf.Bytes(), 0644); err != nil {
		return "", err
	}

	return thumbPath, nil
}
