package errors

import (
	"fmt"

	"github.com/transferia/tweetstream/pkg/abstract"
	"github.com/transferia/tweetstream/pkg/errors/categories"
	"github.com/transferia/tweetstream/pkg/errors/coded"
	"github.com/transferia/tweetstream/pkg/errors/codes"
	"go.uber.org/multierr"
	"go.ytsaurus.tech/library/go/core/log"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

const (
	KeyAgentName = "agent_name"
	KeySrcType   = "labels.src_type"
	KeyDstType   = "labels.dst_type"
	Category     = "labels.category"
	Code         = "labels.code"
)

// LogFatalError writes one labelled record per error in err, so that the cause
// of an ingestion shutdown can be found by category or code.
func LogFatalError(lgr log.Logger, err error, agentName string, srcType, dstType abstract.ProviderType) {
	defer func() {
		if r := recover(); r != nil {
			lgr.Error(
				"panic during error logging",
				log.String("panic", fmt.Sprintf("%v", r)),
				log.String(KeyAgentName, agentName),
				log.String(Category, string(categories.Internal)),
				log.String(Code, codes.Unspecified.ID()),
			)
		}
	}()

	for _, e := range multierr.Errors(err) {
		logFatalError(lgr, e, agentName, srcType, dstType)
	}
}

func logFatalError(lgr log.Logger, err error, agentName string, srcType, dstType abstract.ProviderType) {
	code := codes.Unspecified
	var codedErr coded.CodedError
	if xerrors.As(err, &codedErr) {
		code = codedErr.Code()
	}
	msg := ExtractShortStackTrace(err)
	if code != codes.Unspecified || msg == "" {
		msg = code.ID()
	}
	lgr.Error(
		msg,
		log.Error(err),
		log.String(KeyAgentName, agentName),
		log.String(KeySrcType, srcType.Name()),
		log.String(KeyDstType, dstType.Name()),
		log.String(Category, string(CategoryOf(err))),
		log.String(Code, code.ID()),
	)
}
