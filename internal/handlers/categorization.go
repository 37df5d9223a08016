package handlers

import (
	"net/http"
	"strconv"

	"github.com/Veraticus/pennywise/internal/analysis"
	"github.com/Veraticus/pennywise/internal/model"
	"github.com/shopspring/decimal"
)

type suggestRequest struct {
	Description *string `json:"description"`
	UserID      *int64  `json:"user_id"`
	Limit       int     `json:"limit"`
}

type suggestResponse struct {
	Description      string            `json:"description"`
	Suggestions      []model.Candidate `json:"suggestions"`
	TotalSuggestions int               `json:"total_suggestions"`
}

// HandleSuggest ranks categories for a description.
func (d *Dependencies) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	var req suggestRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Description == nil || req.UserID == nil {
		WriteError(w, http.StatusBadRequest, "description and user_id are required")
		return
	}

	suggestions, err := d.Engine.Suggest(r.Context(), *req.Description, *req.UserID, req.Limit)
	if err != nil {
		d.Logger.Error("failed to suggest categories", "user_id", *req.UserID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to suggest categories")
		return
	}

	WriteJSON(w, http.StatusOK, suggestResponse{
		Description:      *req.Description,
		Suggestions:      suggestions,
		TotalSuggestions: len(suggestions),
	})
}

type autoCategorizeRequest struct {
	Description *string          `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	UserID      *int64           `json:"user_id"`
}

type suggestedCategory struct {
	Name  string             `json:"name"`
	Type  model.CategoryType `json:"type"`
	Color string             `json:"color"`
	Icon  string             `json:"icon"`
	ID    int64              `json:"id"`
}

type autoCategorizeResponse struct {
	SuggestedCategory *suggestedCategory `json:"suggested_category"`
	Description       string             `json:"description"`
	Confidence        string             `json:"confidence,omitempty"`
	Message           string             `json:"message,omitempty"`
}

// HandleAutoCategorize resolves the single best category for a transaction. The
// amount may be sent as a JSON number or a numeric string.
func (d *Dependencies) HandleAutoCategorize(w http.ResponseWriter, r *http.Request) {
	var req autoCategorizeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if field := firstMissing(
		required{"description", req.Description == nil},
		required{"amount", req.Amount == nil},
		required{"user_id", req.UserID == nil},
	); field != "" {
		WriteError(w, http.StatusBadRequest, field+" is required")
		return
	}

	cat, err := d.Engine.AutoCategorize(r.Context(), *req.Description, *req.Amount, *req.UserID)
	if err != nil {
		d.Logger.Error("failed to categorize transaction", "user_id", *req.UserID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to categorize transaction")
		return
	}

	resp := autoCategorizeResponse{Description: *req.Description}
	if cat == nil {
		resp.Message = "Could not categorize automatically"
	} else {
		resp.SuggestedCategory = &suggestedCategory{
			ID:    cat.ID,
			Name:  cat.Name,
			Type:  cat.Type,
			Color: cat.Color,
			Icon:  cat.Icon,
		}
		resp.Confidence = "high"
	}
	WriteJSON(w, http.StatusOK, resp)
}

type batchRequest struct {
	UserID *int64 `json:"user_id"`
	Limit  int    `json:"limit"`
}

type batchResponse struct {
	Results *model.BatchResult `json:"results"`
	Message string             `json:"message"`
}

// HandleBatchCategorize categorizes a user's uncategorized transactions inside one
// storage transaction. Any failure rolls the whole batch back.
func (d *Dependencies) HandleBatchCategorize(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.UserID == nil {
		WriteError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	ctx := r.Context()
	tx, err := d.Storage.BeginTx(ctx)
	if err != nil {
		d.Logger.Error("failed to begin transaction", "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to start batch")
		return
	}

	result, err := d.Engine.BatchCategorize(ctx, tx, *req.UserID, req.Limit)
	if err == nil {
		err = tx.Commit()
	}
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			d.Logger.Warn("rollback failed", "error", rbErr)
		}
		d.Logger.Error("batch categorization failed", "user_id", *req.UserID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Batch categorization failed")
		return
	}

	WriteJSON(w, http.StatusOK, batchResponse{
		Message: "Batch categorization complete",
		Results: result,
	})
}

type createRuleRequest struct {
	UserID     *int64  `json:"user_id"`
	Keyword    *string `json:"keyword"`
	CategoryID *int64  `json:"category_id"`
}

type createRuleResponse struct {
	Message    string `json:"message"`
	Keyword    string `json:"keyword"`
	CategoryID int64  `json:"category_id"`
}

// HandleCreateRule validates a keyword rule. Rules are not persisted.
func (d *Dependencies) HandleCreateRule(w http.ResponseWriter, r *http.Request) {
	var req createRuleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if field := firstMissing(
		required{"user_id", req.UserID == nil},
		required{"keyword", req.Keyword == nil},
		required{"category_id", req.CategoryID == nil},
	); field != "" {
		WriteError(w, http.StatusBadRequest, field+" is required")
		return
	}

	ok, err := d.Engine.CreateRule(r.Context(), *req.UserID, *req.Keyword, *req.CategoryID)
	if err != nil {
		d.Logger.Error("failed to create rule", "user_id", *req.UserID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to create rule")
		return
	}
	if !ok {
		WriteError(w, http.StatusBadRequest, "Category not found or invalid")
		return
	}

	WriteJSON(w, http.StatusCreated, createRuleResponse{
		Message:    "Categorization rule created",
		Keyword:    *req.Keyword,
		CategoryID: *req.CategoryID,
	})
}

// HandleAnalyzePatterns reports how the user's categorized transactions are spread.
func (d *Dependencies) HandleAnalyzePatterns(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil || userID <= 0 {
		WriteError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	ctx := r.Context()
	txns, err := d.Storage.FindCategorizedTransactions(ctx, userID)
	if err != nil {
		d.Logger.Error("failed to load categorized transactions", "user_id", userID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to analyze patterns")
		return
	}
	categories, err := d.Storage.FindCategories(ctx, userID, nil)
	if err != nil {
		d.Logger.Error("failed to load categories", "user_id", userID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to analyze patterns")
		return
	}

	WriteJSON(w, http.StatusOK, analysis.Analyze(userID, txns, analysis.CategoryMap(categories)))
}
