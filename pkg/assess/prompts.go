package assess

// Prompt templates for the four generation stages. Each call is single-turn:
// the instruction carries all evidence and prior-stage output it needs, and
// every template demands a JSON-only response.

const dimensionPromptTemplate = `You are a senior AI Strategy Consultant performing an AI Readiness Assessment.

You are evaluating the dimension: **%s**
Definition: %s

SCORING RUBRIC (score out of 10):
- 0-2 (Nascent): No meaningful capability. Major foundational gaps.
- 3-4 (Emerging): Early experiments. Significant gaps. Ad-hoc processes.
- 5-6 (Developing): Repeatable foundation. Clear gaps in scale/governance.
- 7-8 (Advanced): Strong capability. Minor gaps. Some best practices in place.
- 9-10 (Leading): Industry-leading. Systematic. Continuously improving.

EVIDENCE FROM ENTERPRISE DOCUMENTS:
%s

ADDITIONAL CONTEXT:
%s

Assess this dimension based ONLY on the evidence provided. Do not invent information.
If evidence is sparse, score conservatively and note the gap.

Respond with ONLY valid JSON:
{
  "score": <float 0-10>,
  "key_strengths": [<up to 3 specific strengths evidenced in the docs>],
  "key_gaps": [<up to 4 specific gaps or missing capabilities>],
  "evidence_excerpts": [<1-2 direct quotes or paraphrases from the evidence>],
  "recommendations": [<3-4 specific, actionable recommendations>]
}`

const useCasePromptTemplate = `You are an AI Solutions Architect identifying AI use case candidates for an enterprise.

ENTERPRISE CONTEXT (from their documents):
%s

DIMENSION SCORES SUMMARY:
%s

ADDITIONAL CONTEXT:
%s

Identify the TOP 5 most valuable AI use cases for this enterprise based on:
1. Evidence that the process exists and is significant
2. Feasibility given their current maturity scores
3. Expected ROI and business impact
4. Data availability

For each use case, specify an AI approach from: %s.

Respond with ONLY valid JSON - an array of 5 objects:
[{
  "title": <concise use case name>,
  "description": <2-sentence description>,
  "business_process": <which business process this automates/augments>,
  "ai_approach": <specific AI approach>,
  "estimated_complexity": "Low" | "Medium" | "High",
  "estimated_roi_impact": "Low" | "Medium" | "High",
  "prerequisites": [<2-3 things needed before implementation>],
  "priority_rank": <1-5, 1 = highest>
}]`

const synthesisPromptTemplate = `You are a Chief AI Officer writing the executive summary for an AI Readiness Assessment.

ORGANISATION: %s
OVERALL SCORE: %.1f/10 - %s maturity

DIMENSION SCORES:
%s

Write a concise executive summary (4-5 sentences) that:
1. States the overall readiness level and what it means for AI adoption
2. Highlights the 2 strongest dimensions
3. Calls out the 2 most critical gaps
4. Frames the opportunity ahead

Then provide:
- CRITICAL_BLOCKERS: 3-5 things that will prevent AI adoption if not addressed
- QUICK_WINS: 3-5 things that can be done in <90 days with high impact

Respond with ONLY valid JSON:
{
  "executive_summary": <4-5 sentence summary>,
  "critical_blockers": [<blocker strings>],
  "quick_wins": [<quick win strings>]
}`

const roadmapPromptTemplate = `You are an AI Transformation Consultant creating a phased adoption roadmap.

ORGANISATION: %s
OVERALL AI READINESS SCORE: %.1f/10 (%s)

DIMENSION SCORES:
%s

TOP USE CASES IDENTIFIED:
%s

CRITICAL BLOCKERS:
%s

Create a realistic 3-phase roadmap. Phase durations should reflect the organisation's
maturity - a Nascent org needs longer foundation phases than an Advanced one.

Respond with ONLY valid JSON - an array of 3 phase objects:
[{
  "phase": <1, 2, or 3>,
  "title": <evocative phase name>,
  "timeline": <e.g. "Months 1-3" or "Months 4-9">,
  "focus_areas": [<2-3 strategic focus areas>],
  "key_initiatives": [<4-5 specific initiatives to execute>],
  "success_metrics": [<3-4 measurable KPIs for this phase>],
  "dependencies": [<what must be true before this phase begins>]
}]`
