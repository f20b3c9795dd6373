package main

/**************************
 ****** CDS Services ******
 **************************/
type ServiceResponse struct {
	Services []Service `json:"services"`
}

type Service struct {
	Hook              string            `json:"hook"`
	Title             string            `json:"title"`
	Description       string            `json:"description"`
	Id                string            `json:"id"`
	Prefetch          map[string]string `json:"prefetch"`
	UsageRequirements string            `json:"usageRequirements"`
}

/****************************************
 ****** Hook Response - Foundation ******
 ****************************************/

type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
	Type  string `json:"type"`
}

type Coding struct {
	System  string `json:"system"`
	Code    string `json:"code"`
	Display string `json:"display"`
}

/********************************
 ********** App Config **********
 ********************************/

type Config struct {
	RulesFile          string `json:"rulesFile"`
	PatientsFile       string `json:"patientsFile"`
	DefaultPayer       string `json:"defaultPayer"`
	DefaultPhase       string `json:"defaultPhase"`
	CardDetailTemplate string `json:"cardDetailTemplate"`
	SourceLabel        string `json:"sourceLabel"`
	EvidenceURL        string `json:"evidenceUrl"`
}
