package facade

import (
	"context"
	"net/http"

	"irportal/internal/domain"
	"irportal/internal/domain/models"
)

func (f *Facade) table() []Route {
	return []Route{
		// Public site
		{Verb: http.MethodGet, Pattern: "/documents", Handle: f.listDocuments},
		{Verb: http.MethodGet, Pattern: "/documents/search", Handle: f.searchDocuments},
		{Verb: http.MethodGet, Pattern: "/documents/{id}", Handle: f.getDocument},
		{Verb: http.MethodGet, Pattern: "/documents/{id}/download", Handle: f.downloadDocument},
		{Verb: http.MethodGet, Pattern: "/policies", Handle: f.listActivePolicies},
		{Verb: http.MethodGet, Pattern: "/policies/{id}", Handle: f.getPolicy},
		{Verb: http.MethodGet, Pattern: "/policies/{id}/download", Handle: f.getPolicy},
		{Verb: http.MethodGet, Pattern: "/announcements", Handle: f.listPublishedAnnouncements},
		{Verb: http.MethodGet, Pattern: "/board-directors", Handle: f.listBoardDirectors},
		{Verb: http.MethodGet, Pattern: "/promoters", Handle: f.listPromoters},
		{Verb: http.MethodPost, Pattern: "/grievances", Handle: f.createGrievance},

		// Admin dashboard
		{Verb: http.MethodGet, Pattern: "/admin/stats", Handle: f.stats},
		{Verb: http.MethodGet, Pattern: "/admin/grievances", Handle: f.listGrievances},
		{Verb: http.MethodGet, Pattern: "/admin/grievances/{id}", Handle: f.getGrievance},
		{Verb: http.MethodPatch, Pattern: "/admin/grievances/{id}", Handle: f.updateGrievance},
		{Verb: http.MethodGet, Pattern: "/admin/documents", Handle: f.listDocuments},
		{Verb: http.MethodPost, Pattern: "/admin/documents", Handle: f.createDocument},
		{Verb: http.MethodPatch, Pattern: "/admin/documents/{id}", Handle: f.updateDocument},
		{Verb: http.MethodDelete, Pattern: "/admin/documents/{id}", Handle: f.deleteDocument},
		{Verb: http.MethodGet, Pattern: "/admin/policies", Handle: f.listAllPolicies},
		{Verb: http.MethodPost, Pattern: "/admin/policies", Handle: f.createPolicy},
		{Verb: http.MethodPatch, Pattern: "/admin/policies/{id}", Handle: f.updatePolicy},
		{Verb: http.MethodDelete, Pattern: "/admin/policies/{id}", Handle: f.deletePolicy},
		{Verb: http.MethodGet, Pattern: "/admin/announcements", Handle: f.listAnnouncements},
		{Verb: http.MethodPost, Pattern: "/admin/announcements", Handle: f.createAnnouncement},
		{Verb: http.MethodPatch, Pattern: "/admin/announcements/{id}", Handle: f.updateAnnouncement},
		{Verb: http.MethodDelete, Pattern: "/admin/announcements/{id}", Handle: f.deleteAnnouncement},
		{Verb: http.MethodPost, Pattern: "/admin/board-directors", Handle: f.createBoardDirector},
		{Verb: http.MethodPatch, Pattern: "/admin/board-directors/{id}", Handle: f.updateBoardDirector},
		{Verb: http.MethodDelete, Pattern: "/admin/board-directors/{id}", Handle: f.deleteBoardDirector},
		{Verb: http.MethodPost, Pattern: "/admin/promoters", Handle: f.createPromoter},
		{Verb: http.MethodPatch, Pattern: "/admin/promoters/{id}", Handle: f.updatePromoter},
		{Verb: http.MethodDelete, Pattern: "/admin/promoters/{id}", Handle: f.deletePromoter},
	}
}

// found turns a gateway miss into a NotFoundError at the request boundary
func found[T any](v *T, err error, kind models.EntityKind, id string) (any, error) {
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, &domain.NotFoundError{Resource: kind.Singular(), ID: id}
	}
	return v, nil
}

// Documents

func (f *Facade) listDocuments(ctx context.Context, _ string, req Request) (any, error) {
	filter, err := documentFilter(req.Query)
	if err != nil {
		return nil, err
	}
	return f.gw.Documents.ListDocuments(ctx, filter)
}

func (f *Facade) searchDocuments(ctx context.Context, _ string, req Request) (any, error) {
	if !req.Query.Has("q") {
		return nil, invalid("q", "search query is required")
	}
	return f.gw.Documents.SearchDocuments(ctx, req.Query.Get("q"))
}

func (f *Facade) getDocument(ctx context.Context, id string, _ Request) (any, error) {
	doc, err := f.gw.Documents.GetDocument(ctx, id)
	return found(doc, err, models.KindDocument, id)
}

func (f *Facade) downloadDocument(ctx context.Context, id string, _ Request) (any, error) {
	return f.gw.Documents.RecordDownload(ctx, id)
}

func (f *Facade) createDocument(ctx context.Context, _ string, req Request) (any, error) {
	body, err := decodePayload[models.NewDocument](req.Payload)
	if err != nil {
		return nil, err
	}
	return f.gw.Documents.CreateDocument(ctx, body)
}

func (f *Facade) updateDocument(ctx context.Context, id string, req Request) (any, error) {
	patch, err := decodePayload[models.DocumentPatch](req.Payload)
	if err != nil {
		return nil, err
	}
	return f.gw.Documents.UpdateDocument(ctx, id, patch)
}

func (f *Facade) deleteDocument(ctx context.Context, id string, _ Request) (any, error) {
	return nil, f.gw.Documents.DeleteDocument(ctx, id)
}

// Policies

func (f *Facade) listActivePolicies(ctx context.Context, _ string, req Request) (any, error) {
	return f.gw.Policies.ListPolicies(ctx, models.PolicyFilter{Category: queryString(req.Query, "category")})
}

func (f *Facade) listAllPolicies(ctx context.Context, _ string, req Request) (any, error) {
	return f.gw.Policies.ListPolicies(ctx, models.PolicyFilter{
		Category:        queryString(req.Query, "category"),
		IncludeInactive: true,
	})
}

func (f *Facade) getPolicy(ctx context.Context, id string, _ Request) (any, error) {
	p, err := f.gw.Policies.GetPolicy(ctx, id)
	return found(p, err, models.KindPolicy, id)
}

func (f *Facade) createPolicy(ctx context.Context, _ string, req Request) (any, error) {
	body, err := decodePayload[models.NewPolicy](req.Payload)
	if err != nil {
		return nil, err
	}
	return f.gw.Policies.CreatePolicy(ctx, body)
}

func (f *Facade) updatePolicy(ctx context.Context, id string, req Request) (any, error) {
	patch, err := decodePayload[models.PolicyPatch](req.Payload)
	if err != nil {
		return nil, err
	}
	return f.gw.Policies.UpdatePolicy(ctx, id, patch)
}

func (f *Facade) deletePolicy(ctx context.Context, id string, _ Request) (any, error) {
	return nil, f.gw.Policies.DeletePolicy(ctx, id)
}

// Announcements

func (f *Facade) listPublishedAnnouncements(ctx context.Context, _ string, _ Request) (any, error) {
	published := true
	return f.gw.Announcements.ListAnnouncements(ctx, models.AnnouncementFilter{IsPublished: &published})
}

func (f *Facade) listAnnouncements(ctx context.Context, _ string, req Request) (any, error) {
	published, err := queryBool(req.Query, "isPublished")
	if err != nil {
		return nil, err
	}
	return f.gw.Announcements.ListAnnouncements(ctx, models.AnnouncementFilter{IsPublished: published})
}

func (f *Facade) createAnnouncement(ctx context.Context, _ string, req Request) (any, error) {
	body, err := decodePayload[models.NewAnnouncement](req.Payload)
	if err != nil {
		return nil, err
	}
	return f.gw.Announcements.CreateAnnouncement(ctx, body)
}

func (f *Facade) updateAnnouncement(ctx context.Context, id string, req Request) (any, error) {
	patch, err := decodePayload[models.AnnouncementPatch](req.Payload)
	if err != nil {
		return nil, err
	}
	return f.gw.Announcements.UpdateAnnouncement(ctx, id, patch)
}

func (f *Facade) deleteAnnouncement(ctx context.Context, id string, _ Request) (any, error) {
	return nil, f.gw.Announcements.DeleteAnnouncement(ctx, id)
}

// Grievances

func (f *Facade) createGrievance(ctx context.Context, _ string, req Request) (any, error) {
	body, err := decodePayload[models.NewGrievance](req.Payload)
	if err != nil {
		return nil, err
	}
	return f.gw.Grievances.CreateGrievance(ctx, body)
}

func (f *Facade) listGrievances(ctx context.Context, _ string, req Request) (any, error) {
	filter, err := grievanceFilter(req.Query)
	if err != nil {
		return nil, err
	}
	return f.gw.Grievances.ListGrievances(ctx, filter)
}

func (f *Facade) getGrievance(ctx context.Context, id string, _ Request) (any, error) {
	g, err := f.gw.Grievances.GetGrievance(ctx, id)
	return found(g, err, models.KindGrievance, id)
}

func (f *Facade) updateGrievance(ctx context.Context, id string, req Request) (any, error) {
	patch, err := decodePayload[models.GrievancePatch](req.Payload)
	if err != nil {
		return nil, err
	}
	return f.gw.Grievances.UpdateGrievance(ctx, id, patch)
}

// Board

func (f *Facade) listBoardDirectors(ctx context.Context, _ string, _ Request) (any, error) {
	return f.gw.Board.ListBoardDirectors(ctx)
}

func (f *Facade) createBoardDirector(ctx context.Context, _ string, req Request) (any, error) {
	body, err := decodePayload[models.NewBoardDirector](req.Payload)
	if err != nil {
		return nil, err
	}
	return f.gw.Board.CreateBoardDirector(ctx, body)
}

func (f *Facade) updateBoardDirector(ctx context.Context, id string, req Request) (any, error) {
	patch, err := decodePayload[models.BoardDirectorPatch](req.Payload)
	if err != nil {
		return nil, err
	}
	return f.gw.Board.UpdateBoardDirector(ctx, id, patch)
}

func (f *Facade) deleteBoardDirector(ctx context.Context, id string, _ Request) (any, error) {
	return nil, f.gw.Board.DeleteBoardDirector(ctx, id)
}

func (f *Facade) listPromoters(ctx context.Context, _ string, _ Request) (any, error) {
	return f.gw.Board.ListPromoters(ctx)
}

func (f *Facade) createPromoter(ctx context.Context, _ string, req Request) (any, error) {
	body, err := decodePayload[models.NewPromoter](req.Payload)
	if err != nil {
		return nil, err
	}
	return f.gw.Board.CreatePromoter(ctx, body)
}

func (f *Facade) updatePromoter(ctx context.Context, id string, req Request) (any, error) {
	patch, err := decodePayload[models.PromoterPatch](req.Payload)
	if err != nil {
		return nil, err
	}
	return f.gw.Board.UpdatePromoter(ctx, id, patch)
}

func (f *Facade) deletePromoter(ctx context.Context, id string, _ Request) (any, error) {
	return nil, f.gw.Board.DeletePromoter(ctx, id)
}

// Stats

func (f *Facade) stats(ctx context.Context, _ string, _ Request) (any, error) {
	return f.gw.Stats.ComputeStats(ctx)
}
