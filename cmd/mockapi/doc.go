// Package main runs the in-memory finance backend used by nexus during
// development and tests. It issues HS256 bearer tokens and keeps every user's
// accounts, transactions, budgets, goals, investments and notifications in
// memory.
//
// HTTP API (prefix /api/v1 unless noted)
//
//	GET  /health                       (no prefix) {"status": "healthy"}
//	POST /register                     JSON {email, password, full_name, phone_number}
//	POST /login                        JSON {email, password}
//	GET  /ml/predict-category          ?description=&amount=
//	GET  /ml/model-info
//
// Every route below needs "Authorization: Bearer <token>". A missing header
// is 403, a bad or expired token is 401, a token for a deleted user is 404.
//
//	GET    /accounts
//	POST   /accounts                   ?name=&account_type=&currency=&balance=&color=
//	GET    /transactions               ?start_date=&end_date=&category=&limit=
//	POST   /transactions               ?account_id=&description=&amount=&currency=&transaction_date=
//	GET    /budgets
//	POST   /budgets                    ?category=&amount=&currency=&period=
//	DELETE /budgets/{id}
//	GET    /goals
//	POST   /goals                      ?title=&target_amount=&currency=&deadline=&category=&priority=
//	PUT    /goals/{id}                 ?current_amount=
//	GET    /investments
//	POST   /investments                ?name=&investment_type=&amount_invested=&current_value=&purchase_date=...
//	DELETE /investments/{id}
//	GET    /notifications              ?unread_only=
//	PUT    /notifications/{id}/read
//	PUT    /notifications/read-all
//	GET    /recurring-transactions
//	GET    /analytics/spending-insights
//	GET    /analytics/cash-flow-forecast  ?inflation_rate=
//	GET    /analytics/financial-health
//
// Behaviour
//
//   - All state is lost on exit.
//   - Errors are {"detail": "..."}, or {"detail": [{loc, msg, type}]} on 422.
//   - New transactions are categorised by the keyword classifier, move the
//     account balance and may raise budget notifications.
//   - Amounts are sent as JSON numbers.
//
// Environment
//
//	ENV_FILE                      dotenv file to load (default .env)
//	MOCKAPI_ADDR                  listen address (default :8000)
//	SECRET_KEY                    token signing key
//	ACCESS_TOKEN_EXPIRE_MINUTES   token lifetime (default 30)
//	LOG_LEVEL, LOG_FORMAT         logging
package main
