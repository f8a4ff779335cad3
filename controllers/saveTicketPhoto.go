package controllers

import (
    "bytes"
    "context"
    "fmt"
    "image"
    "image/jpeg"
    "image/png"
    "io"
    "log"
    "mime/multipart"
    "os"
    "path/filepath"
    "strings"
    "time"

    "github.com/gin-gonic/gin"
    "github.com/minio/minio-go/v7"
    "github.com/minio/minio-go/v7/pkg/credentials"
    "github.com/nfnt/resize"
)

const (
    maxFileSize       = 5 * 1024 * 1024
    compressThreshold = 100 * 1024
    ticketImageWidth  = 1000
)

var s3Client *minio.Client

// InitStorage wires the S3 client when S3_ENDPOINT is configured; otherwise
// ticket photos land in ./uploads/tickets served by the static route.
func InitStorage() {
    endpoint := os.Getenv("S3_ENDPOINT")
    if endpoint == "" {
        log.Println("S3 not configured, storing ticket photos locally")
        return
    }

    client, err := minio.New(endpoint, &minio.Options{
        Creds:  credentials.NewStaticV4(os.Getenv("S3_ACCESS_KEY"), os.Getenv("S3_SECRET_KEY"), ""),
        Secure: true,
    })
    if err != nil {
        log.Fatalf("Failed to initialize S3 client: %v", err)
    }
    s3Client = client
}

func decodeTicketImage(file *multipart.FileHeader) (image.Image, []byte, string, error) {
    if file.Size > maxFileSize {
        return nil, nil, "", fmt.Errorf("file size exceeds the 5MB limit")
    }

    fileExt := strings.ToLower(filepath.Ext(file.Filename))
    if fileExt != ".jpg" && fileExt != ".jpeg" && fileExt != ".png" {
        return nil, nil, "", fmt.Errorf("unsupported file format: %s", fileExt)
    }

    srcFile, err := file.Open()
    if err != nil {
        return nil, nil, "", fmt.Errorf("failed to open uploaded file: %v", err)
    }
    defer srcFile.Close()

    originalData, err := io.ReadAll(srcFile)
    if err != nil {
        return nil, nil, "", fmt.Errorf("failed to read image data: %v", err)
    }

    var img image.Image
    if fileExt == ".png" {
        img, err = png.Decode(bytes.NewReader(originalData))
    } else {
        img, err = jpeg.Decode(bytes.NewReader(originalData))
    }
    if err != nil {
        return nil, nil, "", fmt.Errorf("failed to decode image: %v", err)
    }
    return img, originalData, fileExt, nil
}

// SaveTicketPhoto compresses and stores a ticket photo, returning its URL.
func SaveTicketPhoto(c *gin.Context, file *multipart.FileHeader, scanID string) (string, error) {
    img, originalData, fileExt, err := decodeTicketImage(file)
    if err != nil {
        return "", err
    }

    var buf bytes.Buffer
    if file.Size >= compressThreshold {
        resized := resize.Resize(ticketImageWidth, 0, img, resize.Lanczos3)
        if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: 80}); err != nil {
            return "", fmt.Errorf("failed to encode resized image: %v", err)
        }
        fileExt = ".jpg"
    } else {
        buf.Write(originalData)
    }

    filename := fmt.Sprintf("%s_%d%s", scanID, time.Now().Unix(), fileExt)

    if s3Client != nil {
        objectName := "tickets/" + filename
        _, err = s3Client.PutObject(context.Background(), os.Getenv("S3_BUCKET"), objectName, &buf, int64(buf.Len()), minio.PutObjectOptions{
            ContentType: "image/jpeg",
        })
        if err != nil {
            return "", fmt.Errorf("failed to upload to S3: %v", err)
        }
        return fmt.Sprintf("https://%s/%s", os.Getenv("S3_CDN_DOMAIN"), objectName), nil
    }

    ticketDir := "./uploads/tickets"
    if _, err := os.Stat(ticketDir); os.IsNotExist(err) {
        if err := os.MkdirAll(ticketDir, os.ModePerm); err != nil {
            return "", fmt.Errorf("failed to create ticket directory: %v", err)
        }
    }
    fullPath := filepath.Join(ticketDir, filename)
    outFile, err := os.Create(fullPath)
    if err != nil {
        return "", fmt.Errorf("failed to create file: %v", err)
    }
    defer outFile.Close()
    if _, err := outFile.Write(buf.Bytes()); err != nil {
        return "", fmt.Errorf("failed to save ticket photo: %v", err)
    }

    return "/uploads/tickets/" + filename, nil
}
