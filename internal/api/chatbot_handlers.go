package api

import (
	"net/http"
	"strings"

	commonhttp "gymlink-api/internal/common/http"
	"gymlink-api/internal/models"
)

type chatbotResponse struct {
	Success        bool                    `json:"success"`
	Answer         string                  `json:"answer"`
	Question       string                  `json:"question"`
	Data           []models.BusinessRecord `json:"data"`
	AppliedFilters models.FilterSet        `json:"appliedFilters"`
	Total          int                     `json:"total"`
}

func (h *handlers) askChatbot(w http.ResponseWriter, r *http.Request) {
	var req chatbotRequest
	if err := h.decodeBody(w, r, &req); err != nil {
		commonhttp.Error(w, err, h.logger)
		return
	}

	answer, err := h.chatbot.Ask(r.Context(), req.Question)
	if err != nil {
		commonhttp.Error(w, err, h.logger)
		return
	}

	commonhttp.JSON(w, http.StatusOK, chatbotResponse{
		Success:        true,
		Answer:         answer.AnswerText,
		Question:       strings.TrimSpace(req.Question),
		Data:           answer.MatchedRecords,
		AppliedFilters: answer.AppliedFilterSet,
		Total:          answer.TotalCount,
	}, h.logger)
}

func (h *handlers) capabilities(w http.ResponseWriter, r *http.Request) {
	commonhttp.JSON(w, http.StatusOK, dataResponse{Success: true, Data: h.chatbot.Capabilities()}, h.logger)
}
