package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"nursery/config"
)

// plantClassNames maps model output indexes to species names. Loaded once at
// startup from PLANT_CLASSES_PATH.
var plantClassNames []string

// LoadClassNames reads the species list the recognition model was trained on.
// A missing file is not fatal, predictions then report "Unknown Plant".
func LoadClassNames(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, &plantClassNames)
}

type prediction struct {
	Index       int     `json:"index"`
	Name        string  `json:"name"`
	Probability float64 `json:"probability"`
	Confidence  string  `json:"confidence"`
}

func topPredictions(probabilities []float64, n int) []prediction {
	indexes := make([]int, len(probabilities))
	for i := range indexes {
		indexes[i] = i
	}
	sort.SliceStable(indexes, func(a, b int) bool {
		return probabilities[indexes[a]] > probabilities[indexes[b]]
	})
	if len(indexes) > n {
		indexes = indexes[:n]
	}

	result := make([]prediction, 0, len(indexes))
	for _, idx := range indexes {
		name := "Unknown Plant"
		if idx < len(plantClassNames) {
			name = plantClassNames[idx]
		}
		result = append(result, prediction{
			Index:       idx,
			Name:        name,
			Probability: probabilities[idx],
			Confidence:  fmt.Sprintf("%.1f", probabilities[idx]*100),
		})
	}
	return result
}

var recognitionClient = &http.Client{Timeout: 30 * time.Second}

// RecognizePlant saves the uploaded photo, forwards it to the recognition
// model service and returns the top three species guesses.
func RecognizePlant(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No image file provided"})
		return
	}

	dir := filepath.Join(config.GetEnv("UPLOAD_DIR", "uploads"), "recognition")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to store image"})
		return
	}
	filename := uuid.NewString() + filepath.Ext(file.Filename)
	savedPath := filepath.Join(dir, filename)
	if err := c.SaveUploadedFile(file, savedPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to store image"})
		return
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("image", file.Filename)
	if err == nil {
		var src multipart.File
		src, err = file.Open()
		if err == nil {
			_, err = io.Copy(part, src)
			src.Close()
		}
	}
	if err == nil {
		err = writer.Close()
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to prepare image"})
		return
	}

	endpoint := config.GetEnv("RECOGNITION_URL", "http://localhost:9080") + "/predict"
	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodPost, endpoint, &buf)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Plant recognition failed. Please try again."})
		return
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := recognitionClient.Do(req)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Plant recognition failed. Please try again."})
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Plant recognition failed. Please try again."})
		return
	}

	var result struct {
		Probabilities []float64 `json:"probabilities"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil || len(result.Probabilities) == 0 {
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Plant recognition failed. Please try again."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"topPredictions": topPredictions(result.Probabilities, 3),
		"uploadedImage":  "/uploads/recognition/" + filename,
		"probabilities":  result.Probabilities,
	})
}
