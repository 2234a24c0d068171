package dataplane

import (
	_ "github.com/transferia/tweetstream/pkg/providers/kafka"
	_ "github.com/transferia/tweetstream/pkg/providers/nats"
	_ "github.com/transferia/tweetstream/pkg/providers/stdout"
	_ "github.com/transferia/tweetstream/pkg/providers/twitter"
)
