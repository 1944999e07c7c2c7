package response

import (
	"encoding/json"
	"net/http"

	"github.com/roamstack/tourism-api/internal/logger"
)

// JSON writes data as a JSON response with the given status code.
func JSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

// InsertAck mirrors the store's insert acknowledgment. A nil id means the
// insert was skipped (e.g. duplicate registration).
type InsertAck struct {
	Message    string `json:"message,omitempty"`
	InsertedID *int64 `json:"insertedId"`
}

// UpdateAck mirrors the store's update acknowledgment.
type UpdateAck struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// DeleteAck mirrors the store's delete acknowledgment.
type DeleteAck struct {
	DeletedCount int64 `json:"deletedCount"`
}

func Inserted(w http.ResponseWriter, id int64) {
	JSON(w, http.StatusOK, InsertAck{InsertedID: &id})
}

func Updated(w http.ResponseWriter, matched, modified int64) {
	JSON(w, http.StatusOK, UpdateAck{MatchedCount: matched, ModifiedCount: modified})
}

func Deleted(w http.ResponseWriter, count int64) {
	JSON(w, http.StatusOK, DeleteAck{DeletedCount: count})
}
