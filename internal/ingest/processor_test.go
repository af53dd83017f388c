package ingest

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/briidgedotone/narra/internal/contentapi"
	mock_contentapi "github.com/briidgedotone/narra/internal/contentapi/mocks"
	"github.com/briidgedotone/narra/internal/domain"
	"github.com/briidgedotone/narra/internal/membership"
	mock_boardpost "github.com/briidgedotone/narra/internal/repositories/boardpost/mocks"
	"github.com/briidgedotone/narra/internal/repositories/memory"
	mock_post "github.com/briidgedotone/narra/internal/repositories/post/mocks"
	mock_profile "github.com/briidgedotone/narra/internal/repositories/profile/mocks"
	"github.com/briidgedotone/narra/internal/transformer"
	"github.com/briidgedotone/narra/internal/upsert"
	"github.com/briidgedotone/narra/pkg/logger"
	"go.uber.org/mock/gomock"
)

const board = "board-1"

func igPayload(id, shortcode, handle string) []byte {
	return []byte(fmt.Sprintf(`{"data":{"xdt_shortcode_media":{
		"id":%q,"shortcode":%q,"is_video":false,
		"display_url":"https://cdn.example/%s.jpg",
		"edge_media_preview_like":{"count":10},
		"owner":{"username":%q,"full_name":"Creator"}}}}`, id, shortcode, shortcode, handle))
}

const tiktokPayload = `{"aweme_detail":{"aweme_id":"7350000000000000001","desc":"dance","aweme_type":0,
	"author":{"unique_id":"dancer","nickname":"Dancer"},"statistics":{"digg_count":5,"comment_count":1}}}`

func ok(data []byte) contentapi.Response {
	return contentapi.Response{Success: true, Data: data}
}

func newProcessor(api contentapi.Client, store *memory.Store, cfg Config) *Processor {
	log := logger.NewNop()
	return New(Opts{
		Config:      cfg,
		API:         api,
		Transformer: transformer.New(),
		Engine:      upsert.New(upsert.Opts{Profiles: store.Profiles(), Posts: store.Posts(), Logger: log}),
		Guard:       membership.New(membership.Opts{BoardPosts: store.BoardPosts(), Logger: log}),
		Logger:      log,
	})
}

func TestRun_EndToEndScenario(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock_contentapi.NewMockClient(ctrl)
	store := memory.New()

	urlFail := "https://www.instagram.com/p/FAIL001/"
	urlNew := "https://www.instagram.com/p/NEW0001/"
	urlDup := "https://www.tiktok.com/@dancer/video/7350000000000000001"

	api.EXPECT().FetchPost(gomock.Any(), urlFail).Return(contentapi.Response{Success: false, Error: "post not found"}, nil)
	api.EXPECT().FetchPost(gomock.Any(), urlNew).Return(ok(igPayload("3300000000000000001_25025320", "NEW0001", "creator")), nil)
	api.EXPECT().FetchPost(gomock.Any(), urlDup).Return(ok([]byte(tiktokPayload)), nil).Times(2)

	p := newProcessor(api, store, Config{TargetBoardID: board})

	seed := p.SaveOne(context.Background(), urlDup, board)
	if seed.Outcome != OutcomeSuccess {
		t.Fatalf("seeding failed: %+v", seed)
	}

	summary, err := p.Run(context.Background(), URLItems([]string{urlFail, urlNew, urlDup}))
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if summary.Total != 3 || summary.Success != 1 || summary.Duplicate != 1 || summary.Error != 1 {
		t.Fatalf("unexpected summary %s", summary)
	}
	if summary.SuccessRatePct != 66.7 {
		t.Fatalf("success rate = %v", summary.SuccessRatePct)
	}

	want := []Outcome{OutcomeFetchFailed, OutcomeSuccess, OutcomeDuplicate}
	wantState := []State{StateFetching, StateDone, StateDone}
	for i, r := range summary.Results {
		if r.Outcome != want[i] {
			t.Fatalf("item %d: outcome %s, want %s", i, r.Outcome, want[i])
		}
		if r.State != wantState[i] {
			t.Fatalf("item %d: state %s, want %s", i, r.State, wantState[i])
		}
	}
	if !domain.IsFetchError(summary.Results[0].Err) || summary.Results[0].FailedIn != StateFetching {
		t.Fatalf("item 0 should be a fetch error: %+v", summary.Results[0])
	}
	if summary.Results[1].NormalizedID != "NEW0001" {
		t.Fatalf("normalized id = %q", summary.Results[1].NormalizedID)
	}
	if got := summary.String(); got != "total=3 success=1 duplicate=1 error=1 success_rate=66.7%" {
		t.Fatalf("summary string = %q", got)
	}
}

func TestRun_Idempotent(t *testing.T) {
	store := memory.New()
	items := []Item{
		{Payload: &transformer.Payload{Platform: domain.PlatformInstagram, Shape: transformer.ShapeSinglePost, Raw: igPayload("ABC123", "ABC123", "creator")}},
		{Payload: &transformer.Payload{Platform: domain.PlatformTikTok, Shape: transformer.ShapeSinglePost, Raw: []byte(tiktokPayload)}},
	}
	p := newProcessor(nil, store, Config{TargetBoardID: board})

	first, err := p.Run(context.Background(), items)
	if err != nil || first.Success != 2 {
		t.Fatalf("first run: %s %v", first, err)
	}
	profiles, posts, boardPosts := store.Counts()

	second, err := p.Run(context.Background(), items)
	if err != nil {
		t.Fatal(err)
	}
	if second.Duplicate != 2 || second.Success != 0 || second.Error != 0 {
		t.Fatalf("second run: %s", second)
	}

	p2, po2, bp2 := store.Counts()
	if p2 != profiles || po2 != posts || bp2 != boardPosts {
		t.Fatalf("second run created rows: %d/%d/%d -> %d/%d/%d", profiles, posts, boardPosts, p2, po2, bp2)
	}
}

func TestRun_NormalizesAcrossEndpoints(t *testing.T) {
	store := memory.New()
	items := []Item{
		{Payload: &transformer.Payload{Platform: domain.PlatformInstagram, Shape: transformer.ShapeSinglePost, Raw: igPayload("17841400000000_123456789", "ABC123", "creator")}},
		{Payload: &transformer.Payload{Platform: domain.PlatformInstagram, Shape: transformer.ShapeSinglePost, Raw: igPayload("ABC123", "ABC123", "creator")}},
	}
	p := newProcessor(nil, store, Config{TargetBoardID: board})

	summary, err := p.Run(context.Background(), items)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Success != 1 || summary.Duplicate != 1 {
		t.Fatalf("expected the second report to dedupe: %s", summary)
	}
	if _, posts, _ := store.Counts(); posts != 1 {
		t.Fatalf("expected one post, got %d", posts)
	}
}

func TestRun_MissingContentNeverWrites(t *testing.T) {
	ctrl := gomock.NewController(t)
	// no expectations: any datastore call fails the test
	profiles := mock_profile.NewMockRepository(ctrl)
	posts := mock_post.NewMockRepository(ctrl)
	boardPosts := mock_boardpost.NewMockRepository(ctrl)

	log := logger.NewNop()
	p := New(Opts{
		Config:      Config{TargetBoardID: board},
		Transformer: transformer.New(),
		Engine:      upsert.New(upsert.Opts{Profiles: profiles, Posts: posts, Logger: log}),
		Guard:       membership.New(membership.Opts{BoardPosts: boardPosts, Logger: log}),
		Logger:      log,
	})

	summary, err := p.Run(context.Background(), []Item{{
		URL: "https://www.instagram.com/p/X/",
		Payload: &transformer.Payload{
			Platform: domain.PlatformInstagram,
			Shape:    transformer.ShapeSinglePost,
			Raw:      []byte(`{"data":{"xdt_shortcode_media":{"caption":{"text":"orphan"}}}}`),
		},
	}})
	if err != nil {
		t.Fatal(err)
	}

	res := summary.Results[0]
	if res.Outcome != OutcomeTransformFailed || !domain.IsMissingContent(res.Err) {
		t.Fatalf("expected missing content, got %+v", res)
	}
	if summary.Error != 1 {
		t.Fatalf("summary %s", summary)
	}
}

func TestRun_DelayAndOffset(t *testing.T) {
	store := memory.New()
	var items []Item
	for i := 0; i < 4; i++ {
		code := fmt.Sprintf("CODE%d", i)
		items = append(items, Item{Payload: &transformer.Payload{
			Platform: domain.PlatformInstagram,
			Shape:    transformer.ShapeSinglePost,
			Raw:      igPayload(code, code, "creator"),
		}})
	}

	p := newProcessor(nil, store, Config{TargetBoardID: board, InterItemDelayMs: 250, StartOffset: 1})
	var slept []time.Duration
	p.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}

	summary, err := p.Run(context.Background(), items)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Total != 3 || summary.Results[0].Index != 1 || summary.NextOffset != 4 {
		t.Fatalf("offset not applied: %s first=%d next=%d", summary, summary.Results[0].Index, summary.NextOffset)
	}
	if len(slept) != 2 {
		t.Fatalf("expected a delay between items only, got %d sleeps", len(slept))
	}
	if slept[0] != 250*time.Millisecond {
		t.Fatalf("delay = %s", slept[0])
	}
}

func TestRun_CancelDuringDelay(t *testing.T) {
	store := memory.New()
	items := []Item{
		{Payload: &transformer.Payload{Platform: domain.PlatformInstagram, Shape: transformer.ShapeSinglePost, Raw: igPayload("A1", "A1", "creator")}},
		{Payload: &transformer.Payload{Platform: domain.PlatformInstagram, Shape: transformer.ShapeSinglePost, Raw: igPayload("A2", "A2", "creator")}},
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := newProcessor(nil, store, Config{TargetBoardID: board, InterItemDelayMs: 1000})
	p.sleep = func(ctx context.Context, _ time.Duration) error {
		cancel()
		return ctx.Err()
	}

	summary, err := p.Run(ctx, items)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	if summary.Total != 1 || summary.Success != 1 || summary.SuccessRatePct != 100 {
		t.Fatalf("partial summary wrong: %s", summary)
	}
	if summary.NextOffset != 1 {
		t.Fatalf("next offset = %d, want 1", summary.NextOffset)
	}
}

func TestRun_CancelDuringFetchLeavesItemForResume(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock_contentapi.NewMockClient(ctrl)
	store := memory.New()

	ctx, cancel := context.WithCancel(context.Background())
	urls := []string{
		"https://www.instagram.com/p/DONE001/",
		"https://www.instagram.com/p/CUT0001/",
		"https://www.instagram.com/p/NEXT001/",
	}
	api.EXPECT().FetchPost(gomock.Any(), urls[0]).Return(ok(igPayload("DONE001", "DONE001", "creator")), nil)
	api.EXPECT().FetchPost(gomock.Any(), urls[1]).DoAndReturn(func(ctx context.Context, _ string) (contentapi.Response, error) {
		cancel()
		return contentapi.Response{}, ctx.Err()
	})

	p := newProcessor(api, store, Config{TargetBoardID: board})
	summary, err := p.Run(ctx, URLItems(urls))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	if summary.Total != 1 || summary.Success != 1 || summary.Error != 0 {
		t.Fatalf("interrupted item must not be counted: %s", summary)
	}
	if summary.NextOffset != 1 {
		t.Fatalf("next offset = %d, want 1", summary.NextOffset)
	}
	for _, r := range summary.Results {
		if r.Index == 1 {
			t.Fatalf("interrupted item recorded as %s", r.Outcome)
		}
	}
}

func TestRun_RequiresBoard(t *testing.T) {
	p := newProcessor(nil, memory.New(), Config{})
	if _, err := p.Run(context.Background(), nil); !errors.Is(err, ErrNoTargetBoard) {
		t.Fatalf("expected ErrNoTargetBoard, got %v", err)
	}
}

func TestSaveOne_DuplicateMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock_contentapi.NewMockClient(ctrl)
	url := "https://www.instagram.com/reel/REEL001/"
	api.EXPECT().FetchPost(gomock.Any(), url).Return(ok(igPayload("REEL001", "REEL001", "creator")), nil).Times(2)

	p := newProcessor(api, memory.New(), Config{TargetBoardID: board})

	if r := p.SaveOne(context.Background(), url, board); r.Outcome != OutcomeSuccess {
		t.Fatalf("first save: %+v", r)
	}
	r := p.SaveOne(context.Background(), url, board)
	if r.Outcome != OutcomeDuplicate || r.UserMessage() != DuplicateMessage {
		t.Fatalf("second save: %s %q", r.Outcome, r.UserMessage())
	}
}

func TestFetch_TransportErrorIsFetchFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock_contentapi.NewMockClient(ctrl)
	api.EXPECT().FetchPost(gomock.Any(), gomock.Any()).Return(contentapi.Response{}, context.DeadlineExceeded)

	p := newProcessor(api, memory.New(), Config{TargetBoardID: board, FetchTimeout: time.Second})
	r := p.SaveOne(context.Background(), "https://www.tiktok.com/@a/video/1", board)
	if r.Outcome != OutcomeFetchFailed || !errors.Is(r.Err, context.DeadlineExceeded) {
		t.Fatalf("unexpected result %+v", r)
	}
}

func TestSuccessRate(t *testing.T) {
	cases := []struct {
		s, d, total int
		want        float64
	}{
		{1, 1, 3, 66.7},
		{0, 0, 0, 0},
		{2, 0, 2, 100},
		{1, 0, 8, 12.5},
	}
	for _, c := range cases {
		if got := SuccessRate(c.s, c.d, c.total); got != c.want {
			t.Errorf("SuccessRate(%d,%d,%d) = %v, want %v", c.s, c.d, c.total, got, c.want)
		}
	}
}

func TestImportProfile_SavesPostsWithoutBoardWrites(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock_contentapi.NewMockClient(ctrl)
	store := memory.New()

	profileBody := `{"user":{"uniqueId":"Dancer","nickname":"Dancer","signature":"moves"},"stats":{"followerCount":1200}}`
	postsBody := `{"aweme_list":[
		{"aweme_id":"7350000000000000001","desc":"one","author":{"unique_id":"dancer"},"statistics":{"digg_count":3}},
		{"desc":"no id","author":{"unique_id":"dancer"}},
		{"aweme_id":"7350000000000000002","desc":"two, no author block"}
	]}`

	api.EXPECT().FetchProfile(gomock.Any(), "dancer", domain.PlatformTikTok).Return(ok([]byte(profileBody)), nil)
	api.EXPECT().FetchPosts(gomock.Any(), "dancer", domain.PlatformTikTok, 5).Return(ok([]byte(postsBody)), nil)

	p := newProcessor(api, store, Config{})
	res, err := p.ImportProfile(context.Background(), "dancer", domain.PlatformTikTok, 5)
	if err != nil {
		t.Fatal(err)
	}
	if res.Profile.Handle != "dancer" || res.Saved != 2 || res.Rejected != 1 || res.Failed != 0 {
		t.Fatalf("unexpected result %+v", res)
	}

	profiles, posts, boardPosts := store.Counts()
	if profiles != 1 || posts != 2 || boardPosts != 0 {
		t.Fatalf("counts = %d profiles, %d posts, %d board posts", profiles, posts, boardPosts)
	}
}

func TestImportProfile_UnsuccessfulProfileFetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock_contentapi.NewMockClient(ctrl)

	api.EXPECT().FetchProfile(gomock.Any(), "ghost", domain.PlatformInstagram).
		Return(contentapi.Response{Success: false, Error: "user not found"}, nil)

	p := newProcessor(api, memory.New(), Config{})
	_, err := p.ImportProfile(context.Background(), "ghost", domain.PlatformInstagram, 3)
	if !domain.IsFetchError(err) {
		t.Fatalf("expected fetch error, got %v", err)
	}
}
