package handlers

import (
	"github.com/growthlab/boostup/internal/app/service/statistics"
	"github.com/growthlab/boostup/pkg/response"
)

// RespOK is a generic OK envelope for endpoints returning no specific data.
type RespOK struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    interface{}              `json:"data"`
}

// RespDashboard wraps DashboardResponse in the standard envelope.
type RespDashboard struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    DashboardResponse        `json:"data"`
}

// RespEngagementStatistic wraps EngagementStatisticResponse in the standard envelope.
type RespEngagementStatistic struct {
	Code    response.APIResponseCode               `json:"code"`
	Message string                                 `json:"message"`
	Data    statistics.EngagementStatisticResponse `json:"data"`
}
