package firestore

import (
	"context"
	"sort"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"github.com/cherish-app/cherish/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	countAlias        = "all"
	actionsCollection = "actions"

	// Firestore accepts at most 30 values in an array-contains-any filter
	arrayContainsAnyLimit = 30
)

// actionDoc is the Firestore persistence model
type actionDoc struct {
	ID          string    `firestore:"id"`
	Action      string    `firestore:"action"`
	For         []string  `firestore:"for"`
	Likes       []string  `firestore:"likes"`
	Done        []string  `firestore:"done"`
	SuggestedBy string    `firestore:"suggested_by"`
	Approved    bool      `firestore:"approved"`
	Description *string   `firestore:"description,omitempty"`
	ImageLink   *string   `firestore:"image_link,omitempty"`
	CreatedAt   time.Time `firestore:"created_at"`
	UpdatedAt   time.Time `firestore:"updated_at"`
}

func toActionDoc(a *model.Action) *actionDoc {
	forTags := a.For
	if forTags == nil {
		forTags = []string{}
	}
	return &actionDoc{
		ID:          string(a.ID),
		Action:      a.Action,
		For:         forTags,
		Likes:       a.Likes.Strings(),
		Done:        a.Done.Strings(),
		SuggestedBy: string(a.SuggestedBy),
		Approved:    a.Approved,
		Description: a.Description,
		ImageLink:   a.ImageLink,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func fromActionDoc(d *actionDoc) *model.Action {
	forTags := d.For
	if forTags == nil {
		forTags = []string{}
	}
	return &model.Action{
		ID:          model.ActionID(d.ID),
		Action:      d.Action,
		For:         forTags,
		Likes:       model.IDSetFromStrings(d.Likes),
		Done:        model.IDSetFromStrings(d.Done),
		SuggestedBy: model.UserID(d.SuggestedBy),
		Approved:    d.Approved,
		Description: d.Description,
		ImageLink:   d.ImageLink,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func docToAction(doc *firestore.DocumentSnapshot) (*model.Action, error) {
	var d actionDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, err
	}
	return fromActionDoc(&d), nil
}

type actionRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newActionRepository(client *firestore.Client) *actionRepository {
	return &actionRepository{
		client: client,
	}
}

func (r *actionRepository) collection() *firestore.CollectionRef {
	if r.collectionPrefix != "" {
		return r.client.Collection(r.collectionPrefix + "_" + actionsCollection)
	}
	return r.client.Collection(actionsCollection)
}

func (r *actionRepository) Create(ctx context.Context, action *model.Action) (*model.Action, error) {
	if action.ID == "" {
		return nil, goerr.New("action ID is required")
	}
	if err := action.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid action", goerr.V("id", action.ID))
	}

	now := time.Now().UTC()
	created := action.Copy()
	created.CreatedAt = now
	created.UpdatedAt = now

	// Create fails if the document already exists
	if _, err := r.collection().Doc(string(created.ID)).Create(ctx, toActionDoc(created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create action", goerr.V("id", created.ID))
	}

	return created, nil
}

func (r *actionRepository) Get(ctx context.Context, id model.ActionID) (*model.Action, error) {
	doc, err := r.collection().Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "action not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get action", goerr.V("id", id))
	}

	a, err := docToAction(doc)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to decode action", goerr.V("id", id))
	}
	return a, nil
}

// query builds a query for filter. tags replaces filter.For so callers can
// split large tag sets into chunks.
func (r *actionRepository) query(filter model.ActionFilter, tags []string) firestore.Query {
	q := r.collection().Query
	if filter.ApprovedOnly {
		q = q.Where("approved", "==", true)
	}
	if len(tags) > 0 {
		q = q.Where("for", "array-contains-any", tags)
	}
	return q
}

func (r *actionRepository) collect(iter *firestore.DocumentIterator) ([]*model.Action, error) {
	defer iter.Stop()

	actions := make([]*model.Action, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate actions")
		}

		a, err := docToAction(doc)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to decode action", goerr.V("doc_id", doc.Ref.ID))
		}
		actions = append(actions, a)
	}
	return actions, nil
}

func chunkTags(tags []string) [][]string {
	var chunks [][]string
	for start := 0; start < len(tags); start += arrayContainsAnyLimit {
		end := min(start+arrayContainsAnyLimit, len(tags))
		chunks = append(chunks, tags[start:end])
	}
	return chunks
}

func sortByCreation(actions []*model.Action) {
	sort.SliceStable(actions, func(i, j int) bool {
		if actions[i].CreatedAt.Equal(actions[j].CreatedAt) {
			return actions[i].ID < actions[j].ID
		}
		return actions[i].CreatedAt.Before(actions[j].CreatedAt)
	})
}

func (r *actionRepository) List(ctx context.Context, filter model.ActionFilter) ([]*model.Action, error) {
	if len(filter.For) <= arrayContainsAnyLimit {
		actions, err := r.collect(r.query(filter, filter.For).Documents(ctx))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list actions",
				goerr.V("approved_only", filter.ApprovedOnly),
				goerr.V("for", filter.For))
		}
		sortByCreation(actions)
		return actions, nil
	}

	// Run one query per chunk of tags and merge, dropping documents that
	// matched more than one chunk.
	var mu sync.Mutex
	merged := make(map[model.ActionID]*model.Action)

	eg, egCtx := errgroup.WithContext(ctx)
	for _, chunk := range chunkTags(filter.For) {
		eg.Go(func() error {
			actions, err := r.collect(r.query(filter, chunk).Documents(egCtx))
			if err != nil {
				return goerr.Wrap(err, "failed to list actions for tag chunk", goerr.V("for", chunk))
			}
			mu.Lock()
			defer mu.Unlock()
			for _, a := range actions {
				merged[a.ID] = a
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	actions := make([]*model.Action, 0, len(merged))
	for _, a := range merged {
		actions = append(actions, a)
	}
	sortByCreation(actions)
	return actions, nil
}

func (r *actionRepository) Count(ctx context.Context, filter model.ActionFilter) (int64, error) {
	// Chunked tag queries can overlap, so large tag sets are counted from the merged list
	if len(filter.For) > arrayContainsAnyLimit {
		actions, err := r.List(ctx, filter)
		if err != nil {
			return 0, goerr.Wrap(err, "failed to count actions")
		}
		return int64(len(actions)), nil
	}

	q := r.query(filter, filter.For)
	res, err := q.NewAggregationQuery().WithCount(countAlias).Get(ctx)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to count actions",
			goerr.V("approved_only", filter.ApprovedOnly),
			goerr.V("for", filter.For))
	}

	return countFromResult(res)
}

// countFromResult reads the WithCount(countAlias) value out of an aggregation result
func countFromResult(res firestore.AggregationResult) (int64, error) {
	raw, ok := res[countAlias]
	if !ok {
		return 0, goerr.New("count missing from aggregation result", goerr.V("result", res))
	}
	v, ok := raw.(*firestorepb.Value)
	if !ok || v == nil {
		return 0, goerr.New("unexpected count aggregation result", goerr.V("result", res))
	}
	if _, ok := v.GetValueType().(*firestorepb.Value_IntegerValue); !ok {
		return 0, goerr.New("count aggregation is not an integer", goerr.V("result", res))
	}
	return v.GetIntegerValue(), nil
}

func (r *actionRepository) FindAt(ctx context.Context, filter model.ActionFilter, offset int64) (*model.Action, error) {
	if offset < 0 {
		return nil, goerr.Wrap(ErrNotFound, "no action at offset", goerr.V("offset", offset))
	}

	if len(filter.For) > arrayContainsAnyLimit {
		actions, err := r.List(ctx, filter)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to find action at offset", goerr.V("offset", offset))
		}
		if offset >= int64(len(actions)) {
			return nil, goerr.Wrap(ErrNotFound, "no action at offset", goerr.V("offset", offset))
		}
		return actions[offset], nil
	}

	// Requires the (approved, created_at) composite index created by `migrate`
	iter := r.query(filter, filter.For).
		OrderBy("created_at", firestore.Asc).
		OrderBy(firestore.DocumentID, firestore.Asc).
		Offset(int(offset)).
		Limit(1).
		Documents(ctx)

	actions, err := r.collect(iter)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to find action at offset", goerr.V("offset", offset))
	}
	if len(actions) == 0 {
		return nil, goerr.Wrap(ErrNotFound, "no action at offset", goerr.V("offset", offset))
	}
	return actions[0], nil
}

func (r *actionRepository) Update(ctx context.Context, id model.ActionID, fn func(*model.Action) error) (*model.Action, error) {
	docRef := r.collection().Doc(string(id))

	var updated *model.Action
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(ErrNotFound, "action not found", goerr.V("id", id))
			}
			return goerr.Wrap(err, "failed to get action", goerr.V("id", id))
		}

		existing, err := docToAction(doc)
		if err != nil {
			return goerr.Wrap(err, "failed to decode action", goerr.V("id", id))
		}

		next := existing.Copy()
		if err := fn(next); err != nil {
			return err
		}
		if err := next.Validate(); err != nil {
			return goerr.Wrap(err, "invalid action", goerr.V("id", id))
		}
		next.ID = existing.ID
		next.CreatedAt = existing.CreatedAt
		next.UpdatedAt = time.Now().UTC()

		if err := tx.Set(docRef, toActionDoc(next)); err != nil {
			return goerr.Wrap(err, "failed to write action", goerr.V("id", id))
		}
		updated = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *actionRepository) Delete(ctx context.Context, id model.ActionID) error {
	docRef := r.collection().Doc(string(id))

	// Check if document exists
	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "action not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to check action existence", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete action", goerr.V("id", id))
	}

	return nil
}
