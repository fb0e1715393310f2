package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/KirkDiggler/steel-compendium/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	err := errors.NotFoundf("ability %s not found", "gouge")

	s.Assert().Equal(errors.CodeNotFound, err.Code)
	s.Assert().Equal("ability gouge not found", err.Message)
	s.Assert().Equal("NOT_FOUND: ability gouge not found", err.Error())
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	base := errors.NotFound("missing").WithMeta("id", "gouge")
	wrapped := errors.Wrap(base, "failed to load ability")

	s.Assert().Equal(errors.CodeNotFound, wrapped.Code)
	s.Assert().Equal("gouge", wrapped.Meta["id"])
	s.Assert().True(stderrors.Is(wrapped, base))
}

func (s *ErrorsTestSuite) TestWrapPlainError() {
	wrapped := errors.Wrap(stderrors.New("disk on fire"), "write failed")

	s.Assert().Equal(errors.CodeInternal, wrapped.Code)
	s.Assert().Contains(wrapped.Error(), "disk on fire")
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Assert().Nil(errors.Wrap(nil, "nothing"))
	s.Assert().Nil(errors.WrapWithCode(nil, errors.CodeInternal, "nothing"))
}

func (s *ErrorsTestSuite) TestSkippable() {
	testCases := []struct {
		name string
		err  error
		want bool
	}{
		{"unreadable", errors.Unreadable("a.md", stderrors.New("bad utf-8")), true},
		{"missing front matter", errors.MissingFrontMatter("b.md"), true},
		{"empty document", errors.EmptyDocument("c.md"), true},
		{"wrapped document failure", errors.Wrap(errors.EmptyDocument("c.md"), "parse"), true},
		{"internal", errors.Internal("boom"), false},
		{"plain", stderrors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Assert().Equal(tc.want, errors.IsSkippable(tc.err))
		})
	}
}

func (s *ErrorsTestSuite) TestDocumentErrorsCarryPath() {
	err := errors.MissingFrontMatter("abilities/fury/gouge.md")
	s.Assert().Equal("abilities/fury/gouge.md", errors.GetMeta(err)["path"])
}

func (s *ErrorsTestSuite) TestGRPCRoundTrip() {
	orig := errors.NotFound("ability not found").WithMeta("id", "gouge")

	grpcErr := errors.ToGRPCError(orig)
	st, ok := status.FromError(grpcErr)
	s.Require().True(ok)
	s.Assert().Equal(codes.NotFound, st.Code())

	back := errors.FromGRPCError(grpcErr)
	s.Assert().True(errors.IsNotFound(back))
	s.Assert().Equal("ability not found", errors.GetMessage(back))
	s.Assert().Equal("gouge", errors.GetMeta(back)["id"])
}

func (s *ErrorsTestSuite) TestGRPCDocumentCodes() {
	grpcErr := errors.ToGRPCError(errors.EmptyDocument("x.md"))
	st, _ := status.FromError(grpcErr)
	s.Assert().Equal(codes.InvalidArgument, st.Code())

	back := errors.FromGRPCError(grpcErr)
	s.Assert().Equal(errors.CodeEmptyDocument, errors.GetCode(back))
	s.Assert().True(errors.IsSkippable(back))
}

func (s *ErrorsTestSuite) TestGRPCPassThrough() {
	st := status.Error(codes.Unavailable, "down")
	s.Assert().Equal(st, errors.ToGRPCError(st))
	s.Assert().Equal(codes.Internal, status.Code(errors.ToGRPCError(stderrors.New("x"))))
	s.Assert().Nil(errors.ToGRPCError(nil))
}

func (s *ErrorsTestSuite) TestHTTPStatus() {
	s.Assert().Equal(404, errors.CodeNotFound.HTTPStatus())
	s.Assert().Equal(400, errors.CodeMissingFrontMatter.HTTPStatus())
	s.Assert().Equal(412, errors.CodeFailedPrecondition.HTTPStatus())
	s.Assert().Equal(500, errors.Code("SOMETHING_ELSE").HTTPStatus())
}
