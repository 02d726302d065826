package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/tradejournal-backend/internal/domain"
	"github.com/simaogato/tradejournal-backend/internal/usecase/notebook"
)

// CreateEntry handles the CreateEntry RPC
func (s *Server) CreateEntry(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	tags, err := tagsField(req)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid tags: %v", err)
	}

	entry, err := s.NotebookService.CreateEntry(ctx, notebook.CreateEntryInput{
		UserID: userID,
		Entry: domain.EntryInput{
			Title:   stringField(req, "title"),
			Content: stringField(req, "content"),
			Mood:    stringField(req, "mood"),
			Tags:    tags,
		},
	})
	if err != nil {
		return nil, mapError(err)
	}

	return newStruct(map[string]any{"entry": entryToMap(entry)})
}

// ListEntries handles the ListEntries RPC. query, mood and tag narrow the page and may be combined.
func (s *Server) ListEntries(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	limit, err := intField(req, "limit")
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid limit: %v", err)
	}
	offset, err := intField(req, "offset")
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid offset: %v", err)
	}

	page, err := s.NotebookService.ListEntries(ctx, notebook.ListEntriesInput{
		UserID: userID,
		Query:  stringField(req, "query"),
		Mood:   stringField(req, "mood"),
		Tag:    stringField(req, "tag"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, mapError(err)
	}

	entries := make([]any, 0, len(page.Entries))
	for _, entry := range page.Entries {
		entries = append(entries, entryToMap(entry))
	}

	return newStruct(map[string]any{
		"entries":     entries,
		"total_count": page.TotalCount,
	})
}

// GetEntry handles the GetEntry RPC
func (s *Server) GetEntry(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(stringField(req, "id"))
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid id format: %v", err)
	}

	entry, err := s.NotebookService.GetEntry(ctx, userID, id)
	if err != nil {
		return nil, mapError(err)
	}

	return newStruct(map[string]any{"entry": entryToMap(entry)})
}

// UpdateEntry handles the UpdateEntry RPC; only the fields present in the request change
func (s *Server) UpdateEntry(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(stringField(req, "id"))
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid id format: %v", err)
	}

	update := domain.EntryUpdate{
		Title:   optionalString(req, "title"),
		Content: optionalString(req, "content"),
		Mood:    optionalString(req, "mood"),
	}
	if _, ok := req.GetFields()["tags"]; ok {
		tags, err := tagsField(req)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid tags: %v", err)
		}
		update.Tags = &tags
	}

	entry, err := s.NotebookService.UpdateEntry(ctx, notebook.UpdateEntryInput{
		UserID:  userID,
		EntryID: id,
		Update:  update,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return newStruct(map[string]any{"entry": entryToMap(entry)})
}

// DeleteEntry handles the DeleteEntry RPC
func (s *Server) DeleteEntry(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(stringField(req, "id"))
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid id format: %v", err)
	}

	if err := s.NotebookService.DeleteEntry(ctx, userID, id); err != nil {
		return nil, mapError(err)
	}

	return newStruct(map[string]any{"id": id.String(), "deleted": true})
}

func optionalString(req *structpb.Struct, key string) *string {
	if _, ok := req.GetFields()[key]; !ok {
		return nil
	}
	v := stringField(req, key)
	return &v
}

// tagsField reads the optional "tags" list; every element must be a string
func tagsField(req *structpb.Struct) ([]string, error) {
	v, ok := req.GetFields()["tags"]
	if !ok {
		return nil, nil
	}
	if _, isNull := v.GetKind().(*structpb.Value_NullValue); isNull {
		return []string{}, nil
	}
	list, ok := v.GetKind().(*structpb.Value_ListValue)
	if !ok {
		return nil, errors.New("must be a list of strings")
	}
	tags := make([]string, 0, len(list.ListValue.GetValues()))
	for _, item := range list.ListValue.GetValues() {
		str, ok := item.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return nil, errors.New("must be a list of strings")
		}
		tags = append(tags, str.StringValue)
	}
	return tags, nil
}

func entryToMap(entry *domain.JournalEntry) map[string]any {
	tags := make([]any, 0, len(entry.Tags))
	for _, tag := range entry.Tags {
		tags = append(tags, tag)
	}
	return map[string]any{
		"id":         entry.ID.String(),
		"user_id":    entry.UserID.String(),
		"title":      entry.Title,
		"content":    entry.Content,
		"mood":       string(entry.Mood),
		"tags":       tags,
		"created_at": entry.CreatedAt.Format(time.RFC3339Nano),
		"updated_at": entry.UpdatedAt.Format(time.RFC3339Nano),
	}
}
