package testutils

import (
	"github.com/itbasis/go-clock"
)

// TestController bundles what a controller needs in tests besides the db.
type TestController struct {
	Clock    clock.Clock
	fakeFeed *FakeFeedServer
}

func (c *TestController) Close() {
	c.fakeFeed.Close()
}

func (c *TestController) FeedURL() string {
	return c.fakeFeed.URL()
}

func (c *TestController) FeedTokenURL() string {
	return c.fakeFeed.TokenURL()
}

func (c *TestController) FakeFeed() *FakeFeedServer {
	return c.fakeFeed
}

func NewTestController(db *TestDB) *TestController {
	return &TestController{
		Clock:    db.Clock,
		fakeFeed: NewFakeFeedServer(),
	}
}
