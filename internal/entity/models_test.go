package entity

import (
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func TestKindForPosition(t *testing.T) {
	convey.Convey("Given a question set with 7 role questions", t, func() {
		convey.So(KindForPosition(0, 7), convey.ShouldEqual, QuestionKindRole)
		convey.So(KindForPosition(6, 7), convey.ShouldEqual, QuestionKindRole)
		convey.So(KindForPosition(7, 7), convey.ShouldEqual, QuestionKindResume)
		convey.So(KindForPosition(14, 7), convey.ShouldEqual, QuestionKindResume)
	})

	convey.Convey("Given no role questions at all", t, func() {
		convey.So(KindForPosition(0, 0), convey.ShouldEqual, QuestionKindResume)
	})
}

func TestQuestionKindValidate(t *testing.T) {
	convey.Convey("Given question kinds", t, func() {
		for _, kind := range []QuestionKind{QuestionKindRole, QuestionKindResume, QuestionKindHR} {
			convey.So(kind.Validate(), convey.ShouldBeNil)
		}
		convey.So(QuestionKind("behavioral").Validate(), convey.ShouldNotBeNil)
		convey.So(QuestionKind("").Validate(), convey.ShouldNotBeNil)
	})
}

func TestResultFormatIsValid(t *testing.T) {
	convey.Convey("Given result formats", t, func() {
		convey.So(FormatMarkdown.IsValid(), convey.ShouldBeTrue)
		convey.So(FormatDOCX.IsValid(), convey.ShouldBeTrue)
		convey.So(FormatPDF.IsValid(), convey.ShouldBeTrue)
		convey.So(ResultFormat("json").IsValid(), convey.ShouldBeFalse)
	})
}
