package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
)

// SaveUpload stores an uploaded file under dir with a timestamped name and
// returns the public path.
func SaveUpload(file multipart.File, header *multipart.FileHeader, dir string) (string, error) {
	filename := fmt.Sprintf("%d_%s", time.Now().UnixNano(), header.Filename)
	fullDir := "./static/uploads/" + dir
	if err := os.MkdirAll(fullDir, os.ModePerm); err != nil {
		return "", err
	}

	path := filepath.Join(fullDir, filename)
	out, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		return "", err
	}
	return "/static/uploads/" + dir + "/" + filename, nil
}

// SaveThumbnail writes a 300px-wide thumbnail next to the stored image and
// returns its public path. publicPath must be a path returned by SaveUpload.
func SaveThumbnail(publicPath string) (string, error) {
	localPath := "." + publicPath
	img, err := imaging.Open(localPath)
	if err != nil {
		return "", err
	}

	thumb := imaging.Resize(img, 300, 0, imaging.Lanczos)
	ext := filepath.Ext(localPath)
	thumbLocal := localPath[:len(localPath)-len(ext)] + "_thumb" + ext
	if err := imaging.Save(thumb, thumbLocal); err != nil {
		return "", err
	}
	return thumbLocal[1:], nil
}
