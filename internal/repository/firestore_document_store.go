package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"storefront/internal/domain"

	"github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

const (
	DefaultFirestoreBaseURL = "https://firestore.googleapis.com/v1"
	firestorePageSize       = "300"
)

type FirestoreOptions struct {
	BaseURL              string
	ProjectID            string
	APIKey               string
	MaxRequestsPerSecond int
	Timeout              time.Duration
	RetryCount           int
}

type firestoreDocument struct {
	Name       string         `json:"name,omitempty"`
	Fields     map[string]any `json:"fields"`
	CreateTime string         `json:"createTime,omitempty"`
	UpdateTime string         `json:"updateTime,omitempty"`
}

type firestoreListResponse struct {
	Documents     []firestoreDocument `json:"documents"`
	NextPageToken string              `json:"nextPageToken"`
}

type firestoreDocumentStore struct {
	rl         ratelimit.Limiter
	httpClient *resty.Client
	docsPath   string
	apiKey     string
	log        *logrus.Logger
}

// NewFirestoreDocumentStore talks to the Firestore REST API of one project.
func NewFirestoreDocumentStore(opts FirestoreOptions, logger *logrus.Logger) (domain.DocumentStore, error) {
	if opts.ProjectID == "" {
		return nil, fmt.Errorf("firestore project id cannot be empty")
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultFirestoreBaseURL
	}
	if opts.MaxRequestsPerSecond <= 0 {
		opts.MaxRequestsPerSecond = 10
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(opts.BaseURL, "/")).
		SetTimeout(opts.Timeout).
		SetRetryCount(opts.RetryCount).
		SetRetryWaitTime(500*time.Millisecond).
		SetRetryMaxWaitTime(5*time.Second).
		SetHeader("Accept", "application/json")

	return &firestoreDocumentStore{
		rl:         ratelimit.New(opts.MaxRequestsPerSecond),
		httpClient: client,
		docsPath:   fmt.Sprintf("/projects/%s/databases/(default)/documents", url.PathEscape(opts.ProjectID)),
		apiKey:     opts.APIKey,
		log:        logger,
	}, nil
}

func (s *firestoreDocumentStore) request(ctx context.Context) *resty.Request {
	s.rl.Take()
	req := s.httpClient.R().SetContext(ctx)
	if s.apiKey != "" {
		req.SetQueryParam("key", s.apiKey)
	}
	return req
}

func (s *firestoreDocumentStore) collectionPath(collection string) string {
	return s.docsPath + "/" + url.PathEscape(collection)
}

func (s *firestoreDocumentStore) documentPath(collection, id string) string {
	return s.collectionPath(collection) + "/" + url.PathEscape(id)
}

func (s *firestoreDocumentStore) List(ctx context.Context, collection string) ([]domain.Document, error) {
	var all []firestoreDocument
	pageToken := ""
	for {
		page := &firestoreListResponse{}
		req := s.request(ctx).
			SetQueryParam("pageSize", firestorePageSize).
			SetResult(page)
		if pageToken != "" {
			req.SetQueryParam("pageToken", pageToken)
		}
		resp, err := req.Get(s.collectionPath(collection))
		if err != nil {
			s.log.Errorf("Failed to list firestore collection %s: %v", collection, err)
			return nil, fmt.Errorf("could not list %s: %w", collection, err)
		}
		if resp.IsError() {
			return nil, s.statusError(resp, "list "+collection)
		}
		all = append(all, page.Documents...)
		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	// The REST API lists by document name; creation time is insertion order.
	sort.SliceStable(all, func(i, j int) bool {
		return createdAt(all[i]).Before(createdAt(all[j]))
	})

	docs := make([]domain.Document, 0, len(all))
	for _, d := range all {
		docs = append(docs, domain.Document{ID: documentID(d.Name), Fields: decodeFirestoreFields(d.Fields)})
	}
	s.log.Debugf("Retrieved %d documents from firestore collection %s", len(docs), collection)
	return docs, nil
}

func (s *firestoreDocumentStore) Get(ctx context.Context, collection, id string) (*domain.Document, error) {
	out := &firestoreDocument{}
	resp, err := s.request(ctx).SetResult(out).Get(s.documentPath(collection, id))
	if err != nil {
		s.log.Errorf("Failed to get firestore document %s/%s: %v", collection, id, err)
		return nil, fmt.Errorf("could not get %s/%s: %w", collection, id, err)
	}
	if resp.IsError() {
		return nil, s.statusError(resp, "get "+collection+"/"+id)
	}
	return &domain.Document{ID: id, Fields: decodeFirestoreFields(out.Fields)}, nil
}

func (s *firestoreDocumentStore) Create(ctx context.Context, collection string, fields map[string]any) (*domain.Document, error) {
	out := &firestoreDocument{}
	resp, err := s.request(ctx).
		SetBody(firestoreDocument{Fields: encodeFirestoreFields(fields)}).
		SetResult(out).
		Post(s.collectionPath(collection))
	if err != nil {
		s.log.Errorf("Failed to create firestore document in %s: %v", collection, err)
		return nil, fmt.Errorf("could not create %s document: %w", collection, err)
	}
	if resp.IsError() {
		return nil, s.statusError(resp, "create in "+collection)
	}
	id := documentID(out.Name)
	s.log.Infof("Firestore document created in %s with ID: %s", collection, id)
	return &domain.Document{ID: id, Fields: fields}, nil
}

func (s *firestoreDocumentStore) Set(ctx context.Context, collection, id string, fields map[string]any) error {
	resp, err := s.request(ctx).
		SetBody(firestoreDocument{Fields: encodeFirestoreFields(fields)}).
		Patch(s.documentPath(collection, id))
	if err != nil {
		s.log.Errorf("Failed to set firestore document %s/%s: %v", collection, id, err)
		return fmt.Errorf("could not set %s/%s: %w", collection, id, err)
	}
	if resp.IsError() {
		return s.statusError(resp, "set "+collection+"/"+id)
	}
	s.log.Infof("Firestore document %s/%s saved", collection, id)
	return nil
}

func (s *firestoreDocumentStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	params := url.Values{}
	for field := range fields {
		params.Add("updateMask.fieldPaths", field)
	}
	params.Set("currentDocument.exists", "true")

	resp, err := s.request(ctx).
		SetQueryParamsFromValues(params).
		SetBody(firestoreDocument{Fields: encodeFirestoreFields(fields)}).
		Patch(s.documentPath(collection, id))
	if err != nil {
		s.log.Errorf("Failed to update firestore document %s/%s: %v", collection, id, err)
		return fmt.Errorf("could not update %s/%s: %w", collection, id, err)
	}
	if resp.IsError() {
		return s.statusError(resp, "update "+collection+"/"+id)
	}
	s.log.Infof("Firestore document %s/%s updated", collection, id)
	return nil
}

func (s *firestoreDocumentStore) Delete(ctx context.Context, collection, id string) error {
	resp, err := s.request(ctx).
		SetQueryParam("currentDocument.exists", "true").
		Delete(s.documentPath(collection, id))
	if err != nil {
		s.log.Errorf("Failed to delete firestore document %s/%s: %v", collection, id, err)
		return fmt.Errorf("could not delete %s/%s: %w", collection, id, err)
	}
	if resp.IsError() {
		return s.statusError(resp, "delete "+collection+"/"+id)
	}
	s.log.Infof("Firestore document %s/%s deleted", collection, id)
	return nil
}

func (s *firestoreDocumentStore) statusError(resp *resty.Response, op string) error {
	switch resp.StatusCode() {
	case http.StatusNotFound:
		s.log.Debugf("Firestore %s: not found", op)
		return fmt.Errorf("firestore %s: %w", op, domain.ErrNotFound)
	case http.StatusConflict:
		s.log.Warnf("Firestore %s: already exists", op)
		return fmt.Errorf("firestore %s: %w", op, domain.ErrConflict)
	default:
		s.log.Errorf("Firestore %s failed: HTTP %d %s", op, resp.StatusCode(), resp.String())
		return fmt.Errorf("firestore %s: HTTP error: %d", op, resp.StatusCode())
	}
}

func documentID(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}

func createdAt(d firestoreDocument) time.Time {
	t, err := time.Parse(time.RFC3339Nano, d.CreateTime)
	if err != nil {
		return time.Time{}
	}
	return t
}
