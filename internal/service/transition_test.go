package service_test

import (
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"adflow.app/tracker/internal/model"
	"adflow.app/tracker/internal/service"
)

var allStatuses = []model.ProjectStatus{
	model.ProjectStatusDraft,
	model.ProjectStatusInProduction,
	model.ProjectStatusReady,
	model.ProjectStatusApproved,
	model.ProjectStatusRevision,
}

var allowedEdges = map[[2]model.ProjectStatus]bool{
	{model.ProjectStatusDraft, model.ProjectStatusInProduction}:    true,
	{model.ProjectStatusInProduction, model.ProjectStatusReady}:    true,
	{model.ProjectStatusInProduction, model.ProjectStatusDraft}:    true,
	{model.ProjectStatusReady, model.ProjectStatusApproved}:        true,
	{model.ProjectStatusReady, model.ProjectStatusRevision}:        true,
	{model.ProjectStatusReady, model.ProjectStatusInProduction}:    true,
	{model.ProjectStatusRevision, model.ProjectStatusInProduction}: true,
}

var _ = Describe("ValidateTransition", func() {
	Describe("graph closure", func() {
		for _, from := range allStatuses {
			for _, to := range allStatuses {
				It(fmt.Sprintf("decides %s -> %s from the edge table", from, to), func() {
					err := service.ValidateTransition(from, to, 3)
					switch {
					case from == model.ProjectStatusApproved:
						Expect(err).To(MatchError(service.ErrTerminalState))
					case allowedEdges[[2]model.ProjectStatus{from, to}]:
						Expect(err).NotTo(HaveOccurred())
					default:
						Expect(err).To(MatchError(service.ErrInvalidTransition))
					}
				})
			}
		}
	})

	Describe("creative precondition", func() {
		for edge := range allowedEdges {
			from, to := edge[0], edge[1]
			It(fmt.Sprintf("checks deliverables for %s -> %s", from, to), func() {
				err := service.ValidateTransition(from, to, 0)
				if to == model.ProjectStatusInProduction || to == model.ProjectStatusReady {
					Expect(err).To(MatchError(service.ErrPreconditionFailed))
				} else {
					Expect(err).NotTo(HaveOccurred())
				}
			})
		}
	})

	It("reports a terminal project before anything else", func() {
		err := service.ValidateTransition(model.ProjectStatusApproved, "bogus", 0)
		Expect(err).To(MatchError(service.ErrTerminalState))
	})

	It("rejects an unknown target status as a validation error", func() {
		err := service.ValidateTransition(model.ProjectStatusDraft, "archived", 1)
		Expect(err).To(MatchError(service.ErrValidation))

		var verr *service.ValidationError
		Expect(errors.As(err, &verr)).To(BeTrue())
		Expect(verr.Fields[0].Field).To(Equal("status"))
	})

	It("carries the rejected edge", func() {
		err := service.ValidateTransition(model.ProjectStatusDraft, model.ProjectStatusApproved, 1)

		var terr *service.TransitionError
		Expect(errors.As(err, &terr)).To(BeTrue())
		Expect(terr.From).To(Equal(model.ProjectStatusDraft))
		Expect(terr.To).To(Equal(model.ProjectStatusApproved))
	})

	It("keeps the edge table consistent with the model", func() {
		for _, from := range allStatuses {
			for _, to := range allStatuses {
				Expect(from.CanTransitionTo(to)).To(Equal(allowedEdges[[2]model.ProjectStatus{from, to}]),
					"%s -> %s", from, to)
			}
		}
		Expect(model.ProjectStatusApproved.IsTerminal()).To(BeTrue())
	})
})

var _ = Describe("ValidateReviewDecision", func() {
	DescribeTable("review decisions",
		func(current, decision model.ProjectStatus, creatives int64, expected error) {
			err := service.ValidateReviewDecision(current, decision, creatives)
			if expected == nil {
				Expect(err).NotTo(HaveOccurred())
			} else {
				Expect(err).To(MatchError(expected))
			}
		},
		Entry("approve from ready", model.ProjectStatusReady, model.ProjectStatusApproved, int64(2), nil),
		Entry("revise from ready", model.ProjectStatusReady, model.ProjectStatusRevision, int64(2), nil),
		Entry("approve from draft", model.ProjectStatusDraft, model.ProjectStatusApproved, int64(2), service.ErrInvalidTransition),
		Entry("revise from draft", model.ProjectStatusDraft, model.ProjectStatusRevision, int64(2), service.ErrInvalidTransition),
		Entry("revise from in production", model.ProjectStatusInProduction, model.ProjectStatusRevision, int64(2), service.ErrInvalidTransition),
		Entry("approve twice", model.ProjectStatusApproved, model.ProjectStatusApproved, int64(2), service.ErrTerminalState),
		Entry("revise an approved project", model.ProjectStatusApproved, model.ProjectStatusRevision, int64(2), service.ErrTerminalState),
	)
})
