package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"mukbang-backend/internal/services"
)

const maxImageSize = 10 << 20 // 10MB

type ImageHandler struct {
	vision   *services.VisionService
	imageGen *services.ImageGenService
}

func NewImageHandler(vision *services.VisionService, imageGen *services.ImageGenService) *ImageHandler {
	return &ImageHandler{vision: vision, imageGen: imageGen}
}

// Analyze handles POST /api/analyze-image (multipart form, field "image").
func (h *ImageHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("图片大小不能超过 10MB"))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("请上传图片"))
		return
	}
	defer file.Close()

	if header.Size > maxImageSize {
		writeJSON(w, http.StatusBadRequest, errorResp("图片大小不能超过 10MB"))
		return
	}

	imageBytes, err := io.ReadAll(io.LimitReader(file, maxImageSize+1))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("图片分析失败，请稍后重试"))
		return
	}
	if len(imageBytes) > maxImageSize {
		writeJSON(w, http.StatusBadRequest, errorResp("图片大小不能超过 10MB"))
		return
	}

	description, err := h.vision.AnalyzeImage(r.Context(), imageBytes, header.Header.Get("Content-Type"))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("图片分析失败，请稍后重试"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"description": description,
	})
}

// ImageModel describes one image generation model the frontend can offer.
type ImageModel struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	MaxResolution   string   `json:"maxResolution"`
	SupportedRatios []string `json:"supportedRatios"`
}

var imageModels = []ImageModel{
	{
		ID:              "imagen-3.0-generate-001",
		Name:            "Imagen 3.0",
		Description:     "Google 最新的图片生成模型",
		MaxResolution:   "2K",
		SupportedRatios: []string{"1:1", "16:9", "9:16", "4:3", "3:4"},
	},
}

// ListModels handles GET /api/models.
func (h *ImageHandler) ListModels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"models":  imageModels,
	})
}

// GenerateImage handles POST /api/generate-image.
func (h *ImageHandler) GenerateImage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("请求格式错误"))
		return
	}
	if req.Prompt == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("请提供图片描述"))
		return
	}

	image, err := h.imageGen.GenerateImage(r.Context(), req.Prompt)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("图片生成失败"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"image":   image,
	})
}
