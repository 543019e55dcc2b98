/*
 * @module service/insights/scorer
 * @description 置信度评分器：把候选洞察与数据质量信号确定性地映射为低/中/高层级
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow 输入钳制到[0,1] -> 加权求和 -> 阈值分层
 * @rules score = 0.4*completeness + 0.3*significance + 0.3*match_strength；≥0.7为high，≥0.4为medium；纯确定性
 * @dependencies insight-service/service/models
 * @refs service/insights/engine.go
 */

package insights

import (
	"insight-service/service/models"
	"insight-service/service/utils"
)

// ScoreConfidence 计算候选洞察的置信度层级
func ScoreConfidence(candidate models.InsightCandidate, quality models.DataQuality) string {
	score := 0.4*utils.Clamp01(quality.Completeness) +
		0.3*utils.Clamp01(candidate.Significance) +
		0.3*utils.Clamp01(candidate.MatchStrength)

	switch {
	case score >= 0.7:
		return models.ConfidenceHigh
	case score >= 0.4:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}
