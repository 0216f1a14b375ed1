package httpx

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/target/recruit-board/internal/domain/model"
	apperrors "github.com/target/recruit-board/internal/errors"
)

// optionalQuery returns a pointer to the trimmed query value, or nil when
// the parameter is missing or blank.
func optionalQuery(r *http.Request, key string) *string {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return nil
	}
	return &v
}

// parseTaskFilter reads assignee_id, status and priority. Omitted parameters
// match everything.
func parseTaskFilter(r *http.Request) (model.TaskFilter, error) {
	var f model.TaskFilter
	f.AssigneeID = optionalQuery(r, "assignee_id")

	if v := optionalQuery(r, "status"); v != nil {
		s, ok := model.ParseTaskStatus(*v)
		if !ok {
			return f, apperrors.ValidationField("status", "status must be one of: todo, in_progress, review, done")
		}
		f.Status = &s
	}
	if v := optionalQuery(r, "priority"); v != nil {
		p, ok := model.ParseTaskPriority(*v)
		if !ok {
			return f, apperrors.ValidationField("priority", "priority must be one of: low, medium, high")
		}
		f.Priority = &p
	}
	return f, f.Validate()
}

// parseExpiration reads the link lifetime in seconds. A missing value means
// the default lifetime.
func parseExpiration(r *http.Request) (time.Duration, error) {
	v := optionalQuery(r, "expiration")
	if v == nil {
		return 0, nil
	}
	secs, err := strconv.ParseInt(*v, 10, 64)
	if err != nil || secs <= 0 {
		return 0, apperrors.ValidationField("expiration", "expiration must be a positive number of seconds")
	}
	if secs > int64(model.MaxResumeLinkTTL/time.Second) {
		return model.MaxResumeLinkTTL, nil
	}
	return time.Duration(secs) * time.Second, nil
}
