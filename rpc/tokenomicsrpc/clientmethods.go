package tokenomicsrpc

func (r *RpcClient) GetInfo(p GetInfoRequest) (*GetInfoResponse, error) {
	o := &GetInfoResponse{}
	return o, r.Request("get_info", p, &o)
}

func (r *RpcClient) ComputeEmission(p ComputeEmissionRequest) (*ComputeEmissionResponse, error) {
	o := &ComputeEmissionResponse{}
	return o, r.Request("compute_emission", p, &o)
}

func (r *RpcClient) GetSchedule(p GetScheduleRequest) (*GetScheduleResponse, error) {
	o := &GetScheduleResponse{}
	return o, r.Request("get_schedule", p, &o)
}

func (r *RpcClient) ProjectSupply(p ProjectSupplyRequest) (*ProjectSupplyResponse, error) {
	o := &ProjectSupplyResponse{}
	return o, r.Request("project_supply", p, &o)
}

func (r *RpcClient) ClassifyEvent(p ClassifyEventRequest) (*ClassifyEventResponse, error) {
	o := &ClassifyEventResponse{}
	return o, r.Request("classify_event", p, &o)
}

func (r *RpcClient) ComputeSlash(p ComputeSlashRequest) (*ComputeSlashResponse, error) {
	o := &ComputeSlashResponse{}
	return o, r.Request("compute_slash", p, &o)
}

func (r *RpcClient) ReportMisbehavior(p ReportMisbehaviorRequest) (*ReportMisbehaviorResponse, error) {
	o := &ReportMisbehaviorResponse{}
	return o, r.Request("report_misbehavior", p, &o)
}

func (r *RpcClient) GetScore(p GetScoreRequest) (*GetScoreResponse, error) {
	o := &GetScoreResponse{}
	return o, r.Request("get_score", p, &o)
}

func (r *RpcClient) UpdateScore(p UpdateScoreRequest) (*UpdateScoreResponse, error) {
	o := &UpdateScoreResponse{}
	return o, r.Request("update_score", p, &o)
}

func (r *RpcClient) RecoverScores(p RecoverScoresRequest) (*RecoverScoresResponse, error) {
	o := &RecoverScoresResponse{}
	return o, r.Request("recover_scores", p, &o)
}

func (r *RpcClient) GetPenalties(p GetPenaltiesRequest) (*GetPenaltiesResponse, error) {
	o := &GetPenaltiesResponse{}
	return o, r.Request("get_penalties", p, &o)
}

func (r *RpcClient) GetGovernance(p GetGovernanceRequest) (*GetGovernanceResponse, error) {
	o := &GetGovernanceResponse{}
	return o, r.Request("get_governance", p, &o)
}

func (r *RpcClient) SetGovernance(p SetGovernanceRequest) (*SetGovernanceResponse, error) {
	o := &SetGovernanceResponse{}
	return o, r.Request("set_governance", p, &o)
}

func (r *RpcClient) AdvanceEpoch(p AdvanceEpochRequest) (*AdvanceEpochResponse, error) {
	o := &AdvanceEpochResponse{}
	return o, r.Request("advance_epoch", p, &o)
}

func (r *RpcClient) GetEpoch(p GetEpochRequest) (*GetEpochResponse, error) {
	o := &GetEpochResponse{}
	return o, r.Request("get_epoch", p, &o)
}

func (r *RpcClient) GetEpochs(p GetEpochsRequest) (*GetEpochsResponse, error) {
	o := &GetEpochsResponse{}
	return o, r.Request("get_epochs", p, &o)
}
