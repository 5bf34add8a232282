package types

import jsoniter "github.com/json-iterator/go"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// StarRatingNotApplicable is the sentinel the API uses for unrated plans
const StarRatingNotApplicable = "Not Applicable"

// PlanSummary is the landscape record describing a single plan
type PlanSummary struct {
	ContractPlanSegmentID string `json:"contract_plan_segment_id"`
	PlanName              string `json:"plan_name"`
	PlanType              string `json:"plan_type"`
	Organization          string `json:"organization"`
	PartCPremium          string `json:"part_c_premium,omitempty"`
	PartDTotalPremium     string `json:"part_d_total_premium,omitempty"`
	OverallStarRating     string `json:"overall_star_rating,omitempty"`
	County                string `json:"county,omitempty"`
	SNPType               string `json:"snp_type,omitempty"`
	ParentOrganization    string `json:"parent_organization,omitempty"`
}

// HasRating reports whether the plan carries a usable star rating
func (s PlanSummary) HasRating() bool {
	return s.OverallStarRating != "" && s.OverallStarRating != StarRatingNotApplicable
}

// PlanDetails is the richer record scraped from the plan's detail page
type PlanDetails struct {
	PlanInfo           map[string]string `json:"plan_info,omitempty"`
	Premiums           map[string]string `json:"premiums,omitempty"`
	Deductibles        map[string]string `json:"deductibles,omitempty"`
	MaximumOutOfPocket map[string]string `json:"maximum_out_of_pocket,omitempty"`
	ContactInfo        map[string]string `json:"contact_info,omitempty"`
	Benefits           map[string]any    `json:"benefits,omitempty"`
	DrugCoverage       map[string]any    `json:"drug_coverage,omitempty"`
	ExtraBenefits      map[string]any    `json:"extra_benefits,omitempty"`
}

// Well-known keys inside PlanDetails maps
const (
	DetailTotalMonthlyPremium = "Total monthly premium"
	DetailDrugDeductible      = "Drug deductible"
	DetailPlanAddress         = "Plan address"
)

// PlanEntry is one element of a county's plans list.
// Full payloads nest the summary; summary-only payloads are flat.
type PlanEntry struct {
	Summary           PlanSummary  `json:"summary"`
	Details           *PlanDetails `json:"details,omitempty"`
	HasScrapedDetails bool         `json:"has_scraped_details"`
}

func (e *PlanEntry) UnmarshalJSON(data []byte) error {
	var nested struct {
		Summary           *PlanSummary `json:"summary"`
		Details           *PlanDetails `json:"details"`
		HasScrapedDetails bool         `json:"has_scraped_details"`
	}
	if err := json.Unmarshal(data, &nested); err != nil {
		return err
	}

	if nested.Summary != nil {
		*e = PlanEntry{
			Summary:           *nested.Summary,
			Details:           nested.Details,
			HasScrapedDetails: nested.HasScrapedDetails,
		}
		return nil
	}

	var flat PlanSummary
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	*e = PlanEntry{
		Summary:           flat,
		HasScrapedDetails: nested.HasScrapedDetails,
	}
	return nil
}

// ShowDetails reports whether scraped details should be displayed
func (e PlanEntry) ShowDetails() bool {
	return e.HasScrapedDetails && e.Details != nil
}

// PlanDetailResponse is returned by the plan detail endpoint
type PlanDetailResponse struct {
	PlanID            string       `json:"plan_id"`
	State             string       `json:"state"`
	County            string       `json:"county"`
	Summary           PlanSummary  `json:"summary"`
	Details           *PlanDetails `json:"details,omitempty"`
	HasScrapedDetails bool         `json:"has_scraped_details"`
}
