package frontier_test

import (
	"net/url"
	"testing"

	"github.com/rohmanhakim/docs-crawler/internal/frontier"
)

func TestEnqueueDequeue(t *testing.T) {
	queue := frontier.NewFIFOQueue[string]()

	if size := queue.Size(); size != 0 {
		t.Errorf("should have zero size, got: %d", size)
	}

	queue.Enqueue("https://h/a")
	queue.Enqueue("https://h/b")
	queue.Enqueue("https://h/c")

	if size := queue.Size(); size != 3 {
		t.Errorf("should have size 3, got: %d", size)
	}

	output, ok := queue.Dequeue()
	if !ok {
		t.Error("should return ok")
	}
	if output != "https://h/a" {
		t.Errorf("should dequeue in FIFO order, got: %v", output)
	}

	if size := queue.Size(); size != 2 {
		t.Errorf("should have size 2, got: %d", size)
	}
}

func TestDequeueEmpty(t *testing.T) {
	queue := frontier.NewFIFOQueue[string]()

	_, ok := queue.Dequeue()
	if ok {
		t.Error("dequeue on an empty queue should not return ok")
	}
}

func TestSetInsert(t *testing.T) {
	set := frontier.NewSet[string]()

	if !set.Insert("https://h/a") {
		t.Error("first insert should report newly added")
	}
	if set.Insert("https://h/a") {
		t.Error("second insert of the same key should report already present")
	}
	if !set.Contains("https://h/a") {
		t.Error("set should contain the inserted key")
	}
	if size := set.Size(); size != 1 {
		t.Errorf("expected size 1, got: %d", size)
	}
}

func TestSetAddRemove(t *testing.T) {
	set := frontier.NewSet[string]()

	set.Add("https://h/a")
	set.Add("https://h/b")
	if size := set.Size(); size != 2 {
		t.Errorf("expected size 2, got: %d", size)
	}

	set.Remove("https://h/a")
	if set.Contains("https://h/a") {
		t.Error("removed key should not be contained")
	}

	set.Clear()
	if size := set.Size(); size != 0 {
		t.Errorf("expected empty after Clear, got: %d", size)
	}
}

func TestCrawlToken(t *testing.T) {
	u, err := url.Parse("https://h/docs/a")
	if err != nil {
		t.Fatal(err)
	}

	token := frontier.NewCrawlToken(*u, 2)
	tokenURL := token.URL()
	if tokenURL.String() != "https://h/docs/a" {
		t.Errorf("unexpected token URL: %v", tokenURL)
	}
	if token.Depth() != 2 {
		t.Errorf("expected depth 2, got: %d", token.Depth())
	}
}
