package testserver

// BicycleRecording is a captured run for "Buy parts for a bicycle and ship it
// to Paris", reduced to one event per pipeline stage.
const BicycleRecording = `{"type":"log","timestamp":"2026-03-01T10:00:00Z","agent_id":"procurement","agent_name":"Procurement Agent","event":"intent_received","details":"Buy parts for a bicycle and ship it to Paris"}
{"type":"log","timestamp":"2026-03-01T10:00:01Z","agent_id":"procurement","agent_name":"Procurement Agent","event":"components_identified","details":"frame, wheels, drivetrain"}
{"type":"log","timestamp":"2026-03-01T10:00:02Z","agent_id":"supplier_agent","agent_name":"Supplier Agent","event":"discovering_suppliers","details":"4 candidates"}
{"type":"log","timestamp":"2026-03-01T10:00:03Z","agent_id":"supplier_agent","agent_name":"Supplier Agent","event":"quotes_generated","details":"6 quotes"}
{"type":"log","timestamp":"2026-03-01T10:00:04Z","agent_id":"mfg_agent","agent_name":"Manufacturer Agent","event":"assembly_plan_ready","details":"3 days"}
{"type":"log","timestamp":"2026-03-01T10:00:05Z","agent_id":"log_agent","agent_name":"Logistics Agent","event":"route_planned","details":"sea freight"}
{"type":"log","timestamp":"2026-03-01T10:00:06Z","agent_id":"ret_agent","agent_name":"Retailer Agent","event":"delivery_planned","details":"home delivery"}
{"type":"plan","data":{"product":"Bicycle","components":[{"name":"frame"},{"name":"wheels"},{"name":"drivetrain"}],"timeline":{"parts_procurement_days":5,"assembly_days":3,"shipping_days":6,"delivery_days":2,"total_days":16},"suppliers":{"selected":["Shimano Parts","Taiwan Frames"],"selected_details":[{"name":"Shimano Parts","location":"Osaka","coordinates":[135.5,34.7]},{"name":"Taiwan Frames","location":"Taichung","coordinates":{"x":24.1,"y":120.7}}],"quote_count":6},"manufacturer":{"selected":"Giant Assembly","selected_details":{"name":"Giant Assembly","location":"Taichung","coordinates":[120.68,24.15]}},"logistics":{"selected":"Maersk","selected_details":{"name":"Maersk","hub":"Rotterdam","coordinates":[4.48,51.92]},"route":{"total_duration_days":6}},"retailer":{"selected":"Paris Cycles"},"cost_summary":{"parts_cost_usd":180,"shipping_cost_usd":45,"total_cost_usd":225,"retail_price_usd":399}}}
{"type":"report","data":{"agents_involved":5,"message_exchanges":[{"from":"User","to":"Procurement Agent","message":"Buy parts for a bicycle"},{"from":"Procurement Agent","to":"Supplier Agent","message":"Source frame, wheels, drivetrain"},{"from":"Supplier Agent","to":"Procurement Agent","message":"6 quotes"},{"from":"Procurement Agent","to":"Manufacturer Agent","message":"Assemble"},{"from":"Procurement Agent","to":"Logistics Agent","message":"Ship to Paris"},{"from":"Logistics Agent","to":"Retailer Agent","message":"Hand over for delivery"}],"total_partners_evaluated":{"suppliers":4,"manufacturers":2}}}
{"type":"complete"}
`
